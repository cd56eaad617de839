package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Generator hands out unique run identifiers.
type Generator interface {
	NextID() string
}

// SnowflakeGenerator implements Generator using Twitter Snowflake IDs.
type SnowflakeGenerator struct {
	node *snowflake.Node
}

// NewSnowflakeGenerator initializes a new ID generator.
// nodeID must be unique per server instance (0-1023) to prevent collisions.
func NewSnowflakeGenerator(nodeID int64) (*SnowflakeGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}
	return &SnowflakeGenerator{node: node}, nil
}

// NextID returns a new unique ID as its decimal string form.
func (g *SnowflakeGenerator) NextID() string {
	return g.node.Generate().String()
}
