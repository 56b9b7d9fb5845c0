// Package region defines the region capability consumed by pixelization
// queries, plus three concrete regions: spherical circles (caps), convex
// polygons and longitude/latitude boxes.
//
// A Region only has to answer one question: how a spherical triangle
// relates to it (Disjoint, Intersects or Contains). The answer may be
// conservative — misclassifying either certain case as Intersects is
// always safe, it merely costs the search extra subdivision. The other
// direction is not safe and the concrete regions never do it.
package region
