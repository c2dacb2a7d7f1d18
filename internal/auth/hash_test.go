package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	// Reference values produced by the legacy client. These pin the ported
	// arithmetic bit for bit; stored credentials depend on it.
	tests := []struct {
		name     string
		password string
		want     string
	}{
		{
			name:     "ascii password",
			password: "test123",
			want:     "f70246d2c10fefbe8b1d98aa6726b3f2552b419631345cdefb4205cab3543c5a",
		},
		{
			name:     "korean password",
			password: "비밀번호1",
			want:     "ce993c4da630a61b7dc80fe9b82d011d555f79b78fc46aeb675bd4b9dc25b721",
		},
		{
			name:     "empty password still hashes the salt",
			password: "",
			want:     "cb0cdb328d59fe5e4fa7218a7bda8e5211f444b63e27b17e0074d4aa58dbae3a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HashPassword(tt.password)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, 64)
		})
	}
}

func TestHashPassword_Deterministic(t *testing.T) {
	assert.Equal(t, HashPassword("same"), HashPassword("same"))
	assert.NotEqual(t, HashPassword("same"), HashPassword("different"))
}
