package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the built-in configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Gravity: TetrisGravity{
			Interval: 0.5,
		},
		Spawn: TetrisSpawn{
			ColorMin: 0.2,
			ColorMax: 1.0,
		},
		Rules: TetrisRules{
			EndOnTopOut: false,
		},
	}
}
