package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSQLitePath(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "bare file", url: "patients.db", want: "patients.db"},
		{name: "absolute path", url: "/var/lib/nutricare/patients.db", want: "/var/lib/nutricare/patients.db"},
		{name: "two slash scheme", url: "sqlite://patients.db", want: "patients.db"},
		{name: "three slash scheme", url: "sqlite:///patients.db", want: "patients.db"},
		{name: "in-memory dsn untouched", url: "file::memory:?cache=shared", want: "file::memory:?cache=shared"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SQLitePath(tt.url))
		})
	}
}
