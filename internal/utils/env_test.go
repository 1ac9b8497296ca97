package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeEnv(t *testing.T) {
	tests := []struct {
		name   string
		inputs []map[string]string
		want   []string
	}{
		{
			name: "single map",
			inputs: []map[string]string{
				{"TOWER_ACCESS_TOKEN": "abc", "NXF_VER": "24.04.4"},
			},
			want: []string{"NXF_VER=24.04.4", "TOWER_ACCESS_TOKEN=abc"},
		},
		{
			name: "merge two maps - override wins",
			inputs: []map[string]string{
				{"TOWER_ACCESS_TOKEN": "old", "TOWER_API_ENDPOINT": "https://api.cloud.seqera.io"},
				{"TOWER_ACCESS_TOKEN": "new"},
			},
			want: []string{"TOWER_ACCESS_TOKEN=new", "TOWER_API_ENDPOINT=https://api.cloud.seqera.io"},
		},
		{
			name: "empty value dropped",
			inputs: []map[string]string{
				{"TOWER_ACCESS_TOKEN": "abc"},
				{"TOWER_ACCESS_TOKEN": ""},
			},
			want: nil,
		},
		{
			name:   "no maps",
			inputs: nil,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeEnv(tt.inputs...))
		})
	}
}
