package models

import (
	"encoding/json"
	"math"
	"testing"
)

func TestNumberJSON(t *testing.T) {
	tests := []struct {
		name string
		in   Number
		want string
	}{
		{"value", NumberOf(20000), `20000`},
		{"fraction", NumberOf(19.5), `19.5`},
		{"text", TextNumber("negotiable"), `"negotiable"`},
		{"empty", EmptyNumber(), `""`},
		{"infinity", NumberOf(math.Inf(1)), `"Infinity"`},
		{"NaN is empty", NumberOf(math.NaN()), `""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != tt.want {
				t.Errorf("Marshal = %s, want %s", data, tt.want)
			}
			if !json.Valid(data) {
				t.Errorf("invalid JSON %s", data)
			}
		})
	}
}

func TestNumberOfNaN(t *testing.T) {
	n := NumberOf(math.NaN())
	if !n.IsEmpty() {
		t.Errorf("NumberOf(NaN) = %q, want empty", n)
	}
	if _, ok := n.Float64(); ok {
		t.Error("NumberOf(NaN) carries a value")
	}
}
