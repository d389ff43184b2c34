package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestReadCatalog_ConEncabezadoYDescripcion(t *testing.T) {
	in := "sku;nome;categoria;marca;preco;descricao\n" +
		"ARM-01;Armação Aviador;Frame;Ray-Ban;R$ 1.234,56;metal dourado\n" +
		"LC-30;Lente diária;contact_lens;Acuvue;89,90\n"

	items, err := readCatalog(strings.NewReader(in), false)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "ARM-01", items[0].SKU)
	assert.Equal(t, "frame", items[0].Category)
	assert.True(t, decimal.RequireFromString("1234.56").Equal(items[0].Price))
	assert.Equal(t, "metal dourado", items[0].Description)
	assert.True(t, decimal.RequireFromString("89.90").Equal(items[1].Price))
	assert.Empty(t, items[1].Description)
}

func TestReadCatalog_Latin1(t *testing.T) {
	raw, err := charmap.ISO8859_1.NewEncoder().String("ARM-02;Armação acetato;frame;;340,00\n")
	require.NoError(t, err)

	items, err := readCatalog(bytes.NewBufferString(raw), true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Armação acetato", items[0].Name)
}

func TestReadCatalog_Errores(t *testing.T) {
	_, err := readCatalog(strings.NewReader("X;sem preco\n"), false)
	assert.Error(t, err)

	_, err = readCatalog(strings.NewReader("X;Nome;frame;Marca;abc\n"), false)
	assert.Error(t, err)
}

func TestParseBRL(t *testing.T) {
	cases := map[string]string{
		"1.234,56": "1234.56",
		"R$ 89,90": "89.9",
		"89.90":    "89.9",
	}
	for in, want := range cases {
		got, err := parseBRL(in)
		require.NoError(t, err, in)
		assert.True(t, decimal.RequireFromString(want).Equal(got), in)
	}

	_, err := parseBRL("1.000.000")
	assert.Error(t, err)
}
