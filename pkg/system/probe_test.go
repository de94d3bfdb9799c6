package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPackageManager(t *testing.T) {
	tests := []struct {
		name     string
		present  []string
		expected PackageManager
	}{
		{
			name:     "apt wins",
			present:  []string{"apt-get", "dnf"},
			expected: PkgApt,
		},
		{
			name:     "dnf before yum",
			present:  []string{"yum", "dnf"},
			expected: PkgDnf,
		},
		{
			name:     "apk only",
			present:  []string{"apk"},
			expected: PkgApk,
		},
		{
			name:     "zypper last in order",
			present:  []string{"zypper"},
			expected: PkgZypper,
		},
		{
			name:     "nothing found",
			present:  []string{},
			expected: PkgNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			has := func(name string) bool {
				for _, p := range tt.present {
					if p == name {
						return true
					}
				}
				return false
			}
			assert.Equal(t, tt.expected, detectPackageManager(has))
		})
	}
}
