package limiter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid limit only",
			cfg:     Config{Limit: 10},
			wantErr: false,
		},
		{
			name:    "valid offset only",
			cfg:     Config{Offset: 5},
			wantErr: false,
		},
		{
			name:    "valid limit and offset",
			cfg:     Config{Limit: 10, Offset: 5},
			wantErr: false,
		},
		{
			name:    "valid tail only",
			cfg:     Config{Tail: 10},
			wantErr: false,
		},
		{
			name:    "tail ignores offset (valid)",
			cfg:     Config{Tail: 10, Offset: 5},
			wantErr: false,
		},
		{
			name:    "limit and tail mutually exclusive",
			cfg:     Config{Limit: 10, Tail: 5},
			wantErr: true,
			errMsg:  "mutually exclusive",
		},
		{
			name:    "negative limit invalid",
			cfg:     Config{Limit: -1},
			wantErr: true,
			errMsg:  "non-negative",
		},
		{
			name:    "negative offset invalid",
			cfg:     Config{Offset: -1},
			wantErr: true,
			errMsg:  "non-negative",
		},
		{
			name:    "negative tail invalid",
			cfg:     Config{Tail: -1},
			wantErr: true,
			errMsg:  "non-negative",
		},
		{
			name:    "zero values valid",
			cfg:     Config{Limit: 0, Offset: 0, Tail: 0},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfigIsActive(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantBool bool
	}{
		{
			name:     "no flags set",
			cfg:      Config{},
			wantBool: false,
		},
		{
			name:     "limit set",
			cfg:      Config{Limit: 10},
			wantBool: true,
		},
		{
			name:     "offset set",
			cfg:      Config{Offset: 5},
			wantBool: true,
		},
		{
			name:     "tail set",
			cfg:      Config{Tail: 10},
			wantBool: true,
		},
		{
			name:     "all flags set",
			cfg:      Config{Limit: 10, Offset: 5, Tail: 0}, // tail not really set
			wantBool: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.IsActive()
			assert.Equal(t, tt.wantBool, got)
		})
	}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		n          int
		start, end int
	}{
		{name: "inactive", cfg: Config{}, n: 10, start: 0, end: 10},
		{name: "limit", cfg: Config{Limit: 3}, n: 10, start: 0, end: 3},
		{name: "offset", cfg: Config{Offset: 4}, n: 10, start: 4, end: 10},
		{name: "offset and limit", cfg: Config{Offset: 4, Limit: 3}, n: 10, start: 4, end: 7},
		{name: "limit past end", cfg: Config{Offset: 8, Limit: 5}, n: 10, start: 8, end: 10},
		{name: "offset past end", cfg: Config{Offset: 20}, n: 10, start: 10, end: 10},
		{name: "tail", cfg: Config{Tail: 3}, n: 10, start: 7, end: 10},
		{name: "tail longer than rows", cfg: Config{Tail: 30}, n: 10, start: 0, end: 10},
		{name: "empty", cfg: Config{Limit: 3}, n: 0, start: 0, end: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.cfg.Bounds(tt.n)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestApply(t *testing.T) {
	rows := []map[string]any{{"n": 1}, {"n": 2}, {"n": 3}, {"n": 4}, {"n": 5}}

	t.Run("inactive returns the input", func(t *testing.T) {
		assert.Equal(t, rows, Apply(Config{}, rows))
	})

	t.Run("offset and limit", func(t *testing.T) {
		got := Apply(Config{Offset: 1, Limit: 2}, rows)
		assert.Equal(t, []map[string]any{{"n": 2}, {"n": 3}}, got)
	})

	t.Run("offset equals length", func(t *testing.T) {
		assert.Empty(t, Apply(Config{Offset: 5}, rows))
	})

	t.Run("nil rows", func(t *testing.T) {
		assert.Empty(t, Apply[string](Config{Limit: 2}, nil))
	})
}

func TestTailIgnoresOffset(t *testing.T) {
	arr := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	// Even though offset is set, it should be ignored when tail is used
	result := Apply(Config{Tail: 3, Offset: 5}, arr)
	assert.Equal(t, []int{8, 9, 10}, result)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "", Config{}.Describe(10))
	assert.Equal(t, "", Config{Limit: 20}.Describe(10))
	assert.Equal(t, "rows 3-5 of 10", Config{Offset: 2, Limit: 3}.Describe(10))
	assert.Equal(t, "rows 8-10 of 10", Config{Tail: 3}.Describe(10))
	assert.Equal(t, "no rows of 10", Config{Offset: 12}.Describe(10))
}
