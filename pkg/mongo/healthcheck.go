package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ServerInfo identifies the database a ping was answered by.
type ServerInfo struct {
	Name string `json:"name"`
	Host string `json:"host"`
}

// Stats is the subset of dbStats reported by diagnostics.
type Stats struct {
	Collections int64   `json:"collections" bson:"collections"`
	Objects     int64   `json:"objects" bson:"objects"`
	Indexes     int64   `json:"indexes" bson:"indexes"`
	DataSize    float64 `json:"dataSize" bson:"dataSize"`
	StorageSize float64 `json:"storageSize" bson:"storageSize"`
}

// Ping makes sure the connector is ready and issues an administrative ping.
// A failed ping invalidates the cached client.
func (c *Connector) Ping(ctx context.Context) (ServerInfo, error) {
	client, err := c.EnsureConnected(ctx)
	if err != nil {
		return ServerInfo{}, err
	}

	cmd := bson.D{{Key: "ping", Value: 1}}
	if err := client.Database("admin").RunCommand(ctx, cmd).Err(); err != nil {
		perr := newError(KindPing, "ping", err)
		c.Invalidate(ctx, client, perr)
		return ServerInfo{}, perr
	}

	return ServerInfo{
		Name: c.cfg.DatabaseName(),
		Host: c.cfg.Host(),
	}, nil
}

// Stats makes sure the connector is ready and returns dbStats for the
// configured database.
func (c *Connector) Stats(ctx context.Context) (Stats, error) {
	db, err := c.Database(ctx)
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	cmd := bson.D{{Key: "dbStats", Value: 1}}
	if err := db.RunCommand(ctx, cmd).Decode(&stats); err != nil {
		return Stats{}, newError(KindStats, "stats", err)
	}
	return stats, nil
}

// Healthcheck returns a readiness function for httpserver.HealthCheckHandler.
func Healthcheck(conn *Connector) func(context.Context) error {
	return func(ctx context.Context) error {
		if _, err := conn.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
