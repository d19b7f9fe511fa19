package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-p", "8080", "-x", "whatever"},
			allowedFlags: []string{"-p"},
			want:         []string{"-p", "8080"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--port=8080", "-x", "1"},
			allowedFlags: []string{"-p", "--port"},
			want:         []string{"--port=8080"},
		},
		{
			name:         "unknown flags and positionals ignored",
			args:         []string{"-x", "1", "--y=2", "report.bin"},
			allowedFlags: []string{"-p"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept as-is",
			args:         []string{"-p"},
			allowedFlags: []string{"-p"},
			want:         []string{"-p"},
		},
		{
			name:         "flag followed by another flag keeps no value",
			args:         []string{"-p", "-b"},
			allowedFlags: []string{"-p"},
			want:         []string{"-p"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowedFlags)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNonFlagArgs(t *testing.T) {
	tests := []struct {
		name            string
		args            []string
		flagsWithValues []string
		want            []string
	}{
		{
			name:            "positional after flags",
			args:            []string{"-p", "8080", "report.bin"},
			flagsWithValues: []string{"-p"},
			want:            []string{"report.bin"},
		},
		{
			name:            "equals form does not consume next arg",
			args:            []string{"--port=8080", "report.bin"},
			flagsWithValues: []string{"--port"},
			want:            []string{"report.bin"},
		},
		{
			name:            "boolean-style flag leaves positional alone",
			args:            []string{"-v", "report.bin"},
			flagsWithValues: []string{"-p"},
			want:            []string{"report.bin"},
		},
		{
			name:            "no positionals",
			args:            []string{"-p", "8080"},
			flagsWithValues: []string{"-p"},
			want:            []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NonFlagArgs(tt.args, tt.flagsWithValues)
			assert.Equal(t, tt.want, got)
		})
	}
}
