package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEntries_ConCabecera(t *testing.T) {
	in := "SKU,Name,Price,InitialQty\nA-1, Tornillo ,0.25,100\n\nB-2,Tuerca,1.5,\n"
	entries, err := readEntries(strings.NewReader(in), false)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "A-1", entries[0].SKU)
	assert.Equal(t, "Tornillo", entries[0].Name)
	assert.True(t, decimal.RequireFromString("0.25").Equal(entries[0].Price))
	assert.EqualValues(t, 100, entries[0].InitialQty)
	assert.EqualValues(t, 0, entries[1].InitialQty)
}

func TestReadEntries_SinCabecera(t *testing.T) {
	entries, err := readEntries(strings.NewReader("A-1,Tornillo,2,5\n"), false)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestReadEntries_Latin1(t *testing.T) {
	// "Cañería" en ISO-8859-1: ñ = 0xF1
	raw := append([]byte("C-1,Ca"), 0xF1)
	raw = append(raw, []byte("er\xeda,3,1\n")...)
	entries, err := readEntries(bytes.NewReader(raw), true)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Cañería", entries[0].Name)
}

func TestReadEntries_Errores(t *testing.T) {
	cases := map[string]string{
		"precio":   "A-1,Tornillo,2,5\nB-2,Tuerca,abc,1\n",
		"cantidad": "A-1,Tornillo,2,x\n",
		"columnas": "A-1,Tornillo\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := readEntries(strings.NewReader(in), false)
			assert.Error(t, err)
		})
	}
}
