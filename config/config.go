/*******************************************************************************
*
* Copyright 2024 Holo Corelib Authors
*
* This file is part of holo-corelib.
*
* holo-corelib is free software: you can redistribute it and/or modify it under the
* terms of the GNU General Public License as published by the Free Software
* Foundation, either version 3 of the License, or (at your option) any later
* version.
*
* holo-corelib is distributed in the hope that it will be useful, but WITHOUT ANY
* WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR
* A PARTICULAR PURPOSE. See the GNU General Public License for more details.
*
* You should have received a copy of the GNU General Public License along with
* holo-corelib. If not, see <http://www.gnu.org/licenses/>.
*
*******************************************************************************/

// Package config loads the ambient tunables that size and bound the rest of
// this module's components: a plain exported struct handed straight to
// BurntSushi/toml so parse errors name the offending field. No package in
// this module reads a Config itself; callers pass its values on. The codec
// Stream adapter has no buffer-size option and the JSON parser has no
// nesting limit, so BufferSize and MaxNestingDepth have no effect on them.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/holocm/holo-corelib/errs"
)

// Config only needs exported field names for the TOML decoder to produce
// meaningful error messages on malformed input.
type Config struct {
	Codec CodecSection
	Json  JsonSection
	Scan  ScanSection
}

// CodecSection holds the stream buffer-size and classic-compress
// dictionary-width tunables.
type CodecSection struct {
	BufferSize int // bytes; 0 uses the adapter's built-in default (4096)
	ZMaxBits   int // classic-compress code width, 9..16; 0 uses 16
}

// JsonSection holds the JSON nesting-depth tunable.
type JsonSection struct {
	MaxNestingDepth int // 0 means unbounded
}

// ScanSection configures the character scanner.
type ScanSection struct {
	SkipBOM bool
}

// Default returns the zero-value tunables with every "0 means built-in
// default" field resolved to its concrete value.
func Default() Config {
	return Config{
		Codec: CodecSection{BufferSize: 4096, ZMaxBits: 16},
		Json:  JsonSection{MaxNestingDepth: 0},
		Scan:  ScanSection{SkipBOM: false},
	}
}

// Load reads and decodes a TOML configuration file, filling in defaults for
// any field left unset.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errs.Wrap(errs.IoError, err, "config: cannot open %s", path)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads and decodes TOML configuration from r.
func Decode(r io.Reader) (Config, error) {
	blob, err := io.ReadAll(r)
	if err != nil {
		return Config{}, errs.Wrap(errs.IoError, err, "config: read failed")
	}

	cfg := Default()
	if _, err := toml.Decode(string(blob), &cfg); err != nil {
		return Config{}, errs.Wrap(errs.SyntaxError, err, "config: malformed TOML")
	}
	return cfg, cfg.Validate()
}

// Validate rejects out-of-range tunables before they reach a component
// constructor.
func (c Config) Validate() error {
	if c.Codec.BufferSize < 0 {
		return errs.New(errs.InvalidArgument, "config: codec.bufferSize must be >= 0, got %d", c.Codec.BufferSize)
	}
	if c.Codec.ZMaxBits != 0 && (c.Codec.ZMaxBits < 9 || c.Codec.ZMaxBits > 16) {
		return errs.New(errs.InvalidArgument, "config: codec.zMaxBits must be in [9, 16], got %d", c.Codec.ZMaxBits)
	}
	if c.Json.MaxNestingDepth < 0 {
		return errs.New(errs.InvalidArgument, "config: json.maxNestingDepth must be >= 0, got %d", c.Json.MaxNestingDepth)
	}
	return nil
}

// String renders a one-line summary, useful for startup logging.
func (c Config) String() string {
	return fmt.Sprintf("codec{buffer=%d, zMaxBits=%d} json{maxDepth=%d} scan{skipBOM=%v}",
		c.Codec.BufferSize, c.Codec.ZMaxBits, c.Json.MaxNestingDepth, c.Scan.SkipBOM)
}
