package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/hupe1980/sphergo"
	"github.com/hupe1980/sphergo/geom"
	"github.com/hupe1980/sphergo/htm"
	"github.com/hupe1980/sphergo/rangeset"
	"github.com/hupe1980/sphergo/region"
)

func main() {
	level := 10
	maxRanges := 16

	p, err := htm.New(level)
	if err != nil {
		log.Fatal(err)
	}

	// The Crab Nebula, and a 1.5 degree circle around it.
	crab := geom.UnitVectorFromLonLat(geom.LonLatFromDegrees(83.633, 22.015))
	circle := region.NewCircle(crab, 1.5*math.Pi/180)

	fmt.Println("--- Point ---")
	id := p.Index(crab)
	fmt.Println("Level:", level)
	fmt.Println("Cell:", uint64(id))
	fmt.Println("Name:", id)

	fmt.Println("--- Envelope ---")
	start := time.Now()
	envelope, err := p.Envelope(circle, maxRanges)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Elapsed:", time.Since(start))
	fmt.Println("Ranges:", envelope.Len())
	fmt.Println("Cells:", envelope.Cardinality())
	for _, r := range envelope.Ranges() {
		fmt.Println(" ", r)
	}

	fmt.Println("--- Interior ---")
	interior, err := p.Interior(circle, maxRanges)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Ranges:", interior.Len())
	fmt.Println("Cells:", interior.Cardinality())

	fmt.Println("--- Batch ---")
	regions := []region.Region{
		circle,
		region.NewCircle(geom.UnitVectorFromLonLat(geom.LonLatFromDegrees(266.417, -29.008)), math.Pi/180),
		region.NewBoxFromDegrees(80, 20, 90, 25),
	}
	covers, err := sphergo.CoverAll(context.Background(), p, regions, maxRanges)
	if err != nil {
		log.Fatal(err)
	}
	for i, cover := range covers {
		fmt.Printf("Region %d: %d ranges, %d cells\n", i, cover.Len(), cover.Cardinality())
	}

	fmt.Println("--- Codec ---")
	encoded, err := rangeset.Encode(envelope, rangeset.CompressionZSTD)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Encoded bytes:", len(encoded))
	decoded, err := rangeset.Decode(encoded)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Round trip OK:", decoded.Equal(envelope))
}
