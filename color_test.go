package bctex

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColor565Expand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Color565
		want Color888
	}{
		{name: "white", in: 0xFFFF, want: Color888{255, 255, 255}},
		{name: "black", in: 0x0000, want: Color888{0, 0, 0}},
		{name: "red", in: 0xF800, want: Color888{255, 0, 0}},
		{name: "green", in: 0x07E0, want: Color888{0, 255, 0}},
		{name: "blue", in: 0x001F, want: Color888{0, 0, 255}},
		{name: "mid", in: Color565(16<<11 | 32<<5 | 1), want: Color888{132, 130, 8}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, tc.in.Expand())
		})
	}
}

func TestExpandRoundsToNearest(t *testing.T) {
	t.Parallel()

	for v := range 32 {
		require.Equal(t, uint8((v*255+15)/31), expand5(uint8(v)), "5-bit %d", v)
	}
	for v := range 64 {
		require.Equal(t, uint8((v*255+31)/63), expand6(uint8(v)), "6-bit %d", v)
	}
}

func TestColor565Channels(t *testing.T) {
	t.Parallel()

	r, g, b := Color565(0b10101_110011_01110).Channels()
	require.Equal(t, uint8(0b10101), r)
	require.Equal(t, uint8(0b110011), g)
	require.Equal(t, uint8(0b01110), b)
}

func TestColor888IsOpaqueColor(t *testing.T) {
	t.Parallel()

	got := color.NRGBAModel.Convert(Color888{R: 10, G: 20, B: 30}).(color.NRGBA)
	require.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, got)
}
