/*Package config loads the INI-style grid configuration file a haloctl run is
driven from, following the pattern gotetra's render/io/config.go and
design/io/config.go use throughout this author's tools: a gcfg-parsed
wrapper struct whose exported field matches the file's section name.
*/
package config

import (
	"strconv"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/haloflow/geom"
	"github.com/phil-mansfield/haloflow/haloerr"
	"github.com/phil-mansfield/haloflow/layout"
)

// ExampleGridFile documents the [Grid] section's keys, in the same
// backtick-literal style as gotetra/render/io/config.go's
// ExampleConvertSnapshotFile.
const ExampleGridFile = `[Grid]

#######################
# Required Parameters #
#######################

# Domain corners, as comma-separated integer coordinates. The domain is the
# closed cell interval [DomainLo, DomainHi].
DomainLo = 0,0,0
DomainHi = 63,63,63

# Sub-box size along each axis, comma-separated. MaxBoxSize must divide the
# domain dimensions evenly on every axis.
MaxBoxSize = 16,16,16

# Ghost cell radius exchanged around every sub-box.
GhostWidth = 1

# Number of components per cell.
NumComp = 1

#######################
# Optional Parameters #
#######################

# Enable periodic (wrap-around) boundary conditions on the named axis.
# PeriodicX = true
# PeriodicY = true
# PeriodicZ = true

# Exclude the named codimension from neighbour discovery.
# TrimFace = false
# TrimEdge = false
# TrimCorner = false
`

// gridSection mirrors the [Grid] section's keys. DomainLo, DomainHi, and
// MaxBoxSize are read as raw "i,j,k" strings and converted by GridConfig's
// accessor methods, rather than via gcfg's own Scanner hook, so a malformed
// vector produces one of this module's own haloerr.External diagnostics
// instead of a bare gcfg parse error.
type gridSection struct {
	DomainLo, DomainHi, MaxBoxSize string
	GhostWidth                     int
	NumComp                        int
	PeriodicX, PeriodicY, PeriodicZ bool
	TrimFace, TrimEdge, TrimCorner   bool
}

// GridConfig is the parsed contents of a [Grid] configuration file.
type GridConfig struct {
	Grid gridSection
}

// LoadGridConfig reads and parses the [Grid] section of the file at path.
func LoadGridConfig(path string) (*GridConfig, error) {
	cfg := &GridConfig{}
	if err := gcfg.ReadFileInto(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseIntVect parses a comma-separated "i,j,k" string into an IntVect,
// reporting a malformed component through haloerr.External since a bad
// config file is a user-fixable, not a programming, error.
func parseIntVect(field, s string) geom.IntVect {
	parts := strings.Split(s, ",")
	vals := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			haloerr.External("config: %s = %q is not a valid comma-separated integer vector: %v", field, s, err)
		}
		vals[i] = n
	}
	return geom.Vect(vals...)
}

// Domain returns the [DomainLo, DomainHi] problem domain box.
func (c *GridConfig) Domain() geom.Box {
	lo := parseIntVect("DomainLo", c.Grid.DomainLo)
	hi := parseIntVect("DomainHi", c.Grid.DomainHi)
	return geom.NewBox(lo, hi)
}

// MaxBoxSize returns the per-axis sub-box size.
func (c *GridConfig) MaxBoxSize() geom.IntVect {
	return parseIntVect("MaxBoxSize", c.Grid.MaxBoxSize)
}

// Periodic returns the periodic-axis mask the boolean PeriodicX/Y/Z keys
// describe.
func (c *GridConfig) Periodic() layout.PeriodicMask {
	var m layout.PeriodicMask
	if c.Grid.PeriodicX {
		m |= layout.PeriodicX
	}
	if c.Grid.PeriodicY {
		m |= layout.PeriodicY
	}
	if c.Grid.PeriodicZ {
		m |= layout.PeriodicZ
	}
	return m
}

// Trim returns the codimension trim mask the boolean TrimFace/Edge/Corner
// keys describe.
func (c *GridConfig) Trim() layout.TrimMask {
	var m layout.TrimMask
	if c.Grid.TrimFace {
		m |= layout.TrimFace
	}
	if c.Grid.TrimEdge {
		m |= layout.TrimEdge
	}
	if c.Grid.TrimCorner {
		m |= layout.TrimCorner
	}
	return m
}
