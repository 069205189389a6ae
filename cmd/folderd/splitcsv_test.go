package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitCSV(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"a,,c", []string{"a", "c"}},
		{"", nil},
		{" , ", nil},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, splitCSV(c.in), "splitCSV(%q)", c.in)
	}
}
