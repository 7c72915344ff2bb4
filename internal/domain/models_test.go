package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityIsFull(t *testing.T) {
	tests := []struct {
		name         string
		slot         int
		participants int
		want         bool
	}{
		{name: "empty", slot: 10, participants: 0, want: false},
		{name: "one free slot", slot: 10, participants: 9, want: false},
		{name: "exactly full", slot: 10, participants: 10, want: true},
		{name: "over capacity", slot: 10, participants: 11, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Activity{Slot: tt.slot, Participants: make([]Participant, tt.participants)}
			assert.Equal(t, tt.want, a.IsFull())
		})
	}
}

func TestActivityIsPast(t *testing.T) {
	now := time.Date(2025, 7, 15, 13, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		date string
		want bool
	}{
		{name: "yesterday", date: "2025-07-14", want: true},
		{name: "today is not past", date: "2025-07-15", want: false},
		{name: "tomorrow", date: "2025-07-16", want: false},
		{name: "unparseable date", date: "soon", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Activity{ActivityDate: tt.date}
			assert.Equal(t, tt.want, a.IsPast(now))
		})
	}
}

func TestActivityFullAddress(t *testing.T) {
	a := Activity{
		Address: "Jl. Melati 1",
		City: &City{
			CityNameFull: "Kota Bandung",
			Province:     Province{ProvinceName: "Jawa Barat"},
		},
	}
	assert.Equal(t, "Jl. Melati 1, Kota Bandung, Jawa Barat", a.FullAddress())

	bare := Activity{Address: "Jl. Melati 1"}
	assert.Equal(t, "Jl. Melati 1", bare.FullAddress())
}

func TestTransactionStatusRules(t *testing.T) {
	tests := []struct {
		status        string
		cancellable   bool
		awaitingProof bool
	}{
		{status: TxPending, cancellable: true, awaitingProof: true},
		{status: TxFailed, cancellable: false, awaitingProof: true},
		{status: TxSuccess, cancellable: false, awaitingProof: false},
		{status: TxCancelled, cancellable: false, awaitingProof: false},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			tx := Transaction{Status: tt.status}
			assert.Equal(t, tt.cancellable, tx.Cancellable())
			assert.Equal(t, tt.awaitingProof, tx.AwaitingProof())
		})
	}
}

func TestPageBounds(t *testing.T) {
	first := Page{CurrentPage: 1, LastPage: 3}
	assert.False(t, first.HasPrev())
	assert.True(t, first.HasNext())

	middle := Page{CurrentPage: 2, LastPage: 3}
	assert.True(t, middle.HasPrev())
	assert.True(t, middle.HasNext())

	last := Page{CurrentPage: 3, LastPage: 3}
	assert.True(t, last.HasPrev())
	assert.False(t, last.HasNext())

	only := Page{CurrentPage: 1, LastPage: 1}
	assert.False(t, only.HasPrev())
	assert.False(t, only.HasNext())
}

func TestIDJSON(t *testing.T) {
	var got struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":42,"b":"T1","c":null}`), &got))
	assert.Equal(t, ID("42"), got.A)
	assert.Equal(t, ID("T1"), got.B)
	assert.Equal(t, ID(""), got.C)

	out, err := json.Marshal(map[string]ID{"n": "42", "s": "T1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":42,"s":"T1"}`, string(out))
}
