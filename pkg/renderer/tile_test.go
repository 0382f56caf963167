package renderer

import (
	"image"
	"testing"
)

func TestNewTileGrid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
		expectedTiles int
	}{
		{"exact fit", 64, 64, 32, 4},
		{"partial edge tiles", 100, 50, 32, 8},
		{"single tile", 10, 10, 32, 1},
		{"non-positive tile size uses default", 64, 64, 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize)
			if len(tiles) != tt.expectedTiles {
				t.Fatalf("Expected %d tiles, got %d", tt.expectedTiles, len(tiles))
			}

			// Tiles must cover every pixel exactly once
			covered := make(map[image.Point]int)
			for i, tile := range tiles {
				if tile.ID != i {
					t.Errorf("Expected tile ID %d, got %d", i, tile.ID)
				}
				for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
					for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
						covered[image.Pt(x, y)]++
					}
				}
			}
			if len(covered) != tt.width*tt.height {
				t.Errorf("Expected %d covered pixels, got %d", tt.width*tt.height, len(covered))
			}
			for p, n := range covered {
				if n != 1 {
					t.Errorf("Pixel %v covered %d times", p, n)
				}
			}
		})
	}
}

func TestNewTileGrid_ClipsEdges(t *testing.T) {
	tiles := NewTileGrid(100, 50, 32)
	last := tiles[len(tiles)-1]

	expected := image.Rect(96, 32, 100, 50)
	if last.Bounds != expected {
		t.Errorf("Expected last tile bounds %v, got %v", expected, last.Bounds)
	}
}
