package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordPreservesInsertionOrder(t *testing.T) {
	rec := New()
	rec.Set("datetime", "2021-05-20 10:51:50")
	rec.Set("lat", "53.337528")
	rec.Set("lng", "-6.266083")

	assert.Equal(t, []string{"datetime", "lat", "lng"}, rec.Names())
	assert.Equal(t, 3, rec.Len())
	assert.False(t, rec.Empty())
}

func TestRecordSetOverwritesInPlace(t *testing.T) {
	rec := New()
	rec.Set("make", "samsung")
	rec.Set("model", "SM-A505F")
	rec.Set("make", "Samsung")

	assert.Equal(t, []string{"make", "model"}, rec.Names())
	assert.Equal(t, "Samsung", rec.Get("make"))
}

func TestRecordLookup(t *testing.T) {
	rec := New()
	rec.Set("iso", "100")

	v, ok := rec.Lookup("iso")
	assert.True(t, ok)
	assert.Equal(t, "100", v)

	_, ok = rec.Lookup("aperture")
	assert.False(t, ok)
	assert.Equal(t, "", rec.Get("aperture"))
}

func TestRecordClone(t *testing.T) {
	rec := New()
	rec.Set("lat", "1.000000")

	clone := rec.Clone()
	clone.Set("lat", "2.000000")
	clone.Set("lng", "3.000000")

	assert.Equal(t, "1.000000", rec.Get("lat"))
	assert.Equal(t, 1, rec.Len())
	assert.Equal(t, 2, clone.Len())
}

func TestEmptyRecord(t *testing.T) {
	rec := New()
	assert.True(t, rec.Empty())
	assert.Empty(t, rec.Names())
}
