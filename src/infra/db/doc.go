// Package db provides the PostgreSQL connection pool, transaction helper
// and schema migrations.
//
// Example usage:
//
//	pg, err := db.New(ctx, cfg.Database, log)
//	if err != nil {
//	    return err
//	}
//	defer pg.Close()
//
//	if err := db.MigrateUp(cfg.Database.DSN(), log); err != nil {
//	    return err
//	}
package db
