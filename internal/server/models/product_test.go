package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductFilter_Normalize(t *testing.T) {
	tests := []struct {
		name          string
		in            ProductFilter
		wantPage      int
		wantPerPage   int
		wantOffsetVal int
	}{
		{name: "defaults", in: ProductFilter{}, wantPage: 1, wantPerPage: 10, wantOffsetVal: 0},
		{name: "negative page", in: ProductFilter{Page: -3, PerPage: 5}, wantPage: 1, wantPerPage: 5, wantOffsetVal: 0},
		{name: "capped per page", in: ProductFilter{Page: 2, PerPage: 500}, wantPage: 2, wantPerPage: 50, wantOffsetVal: 50},
		{name: "third page", in: ProductFilter{Page: 3, PerPage: 10}, wantPage: 3, wantPerPage: 10, wantOffsetVal: 20},
		{name: "huge page capped", in: ProductFilter{Page: math.MaxInt, PerPage: 50}, wantPage: MaxPage, wantPerPage: 50, wantOffsetVal: (MaxPage - 1) * 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.in
			f.Normalize()
			assert.Equal(t, tt.wantPage, f.Page)
			assert.Equal(t, tt.wantPerPage, f.PerPage)
			assert.Equal(t, tt.wantOffsetVal, f.Offset())
		})
	}
}

func TestNewPage(t *testing.T) {
	f := ProductFilter{Page: 2, PerPage: 10}

	p := NewPage([]int{1, 2, 3}, 23, f)
	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 23, p.TotalItems)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 3, p.ItemOnPage)

	empty := NewPage[int](nil, 0, f)
	assert.Equal(t, 0, empty.TotalPages)

	b, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"data":[]`)
}

func TestUser_HidesPasswordHash(t *testing.T) {
	b, err := json.Marshal(User{Username: "ann", PasswordHash: "$argon2id$secret", Role: RoleUser})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "argon2id")
	assert.Contains(t, string(b), `"role":"user"`)
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleUser.Valid())
	assert.False(t, Role("root").Valid())
}
