package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/notionstudy21-cmd/AuctionHub/internal/auctionerrors"
	"github.com/notionstudy21-cmd/AuctionHub/internal/config"
	model "github.com/notionstudy21-cmd/AuctionHub/internal/models"
	postgres "github.com/notionstudy21-cmd/AuctionHub/internal/repository/db"
)

// PostgresLedger implements Ledger on top of postgres. Conditional writes
// use the version column; the bid commit runs in a single transaction.
type PostgresLedger struct {
	db  *sql.DB
	cfg *config.PostgresConfig
}

// NewPostgresLedger opens the database (unless one is injected) and runs
// migrations when the config asks for it.
func NewPostgresLedger(db *sql.DB, cfg *config.PostgresConfig) (*PostgresLedger, error) {
	var err error

	ledger := &PostgresLedger{
		db:  db,
		cfg: cfg,
	}

	if ledger.cfg == nil {
		ledger.cfg, err = config.NewPostgresConfig()
		if err != nil {
			return nil, fmt.Errorf("repository.NewPostgresLedger: could not load postgres config: %w", err)
		}
	}

	if ledger.db == nil {
		ledger.db, err = postgres.NewPostgresDB(ledger.cfg)
		if err != nil {
			return nil, fmt.Errorf("repository.NewPostgresLedger: could not open postgres db: %w", err)
		}
	}

	if ledger.cfg.AutoMigrateUp == "true" {
		if err = postgres.MigrateUp(ledger.db, ledger.cfg.MigrationsURL); err != nil {
			return nil, fmt.Errorf("repository.NewPostgresLedger: %w", err)
		}
	}

	return ledger, nil
}

func (r *PostgresLedger) Close() error {
	var migErr error
	if r.cfg.AutoMigrateDown == "true" {
		migErr = postgres.MigrateDown(r.db, r.cfg.MigrationsURL)
	}

	err := r.db.Close()
	return errors.Join(migErr, err)
}

const auctionColumns = `
	id, product_id, created_by, start_time, end_time,
	starting_bid, current_bid, current_leader, min_bid_increment,
	status, total_bids, featured, views, version, created_at, updated_at`

func scanAuction(row interface{ Scan(...any) error }) (model.Auction, error) {
	var a model.Auction
	err := row.Scan(
		&a.AuctionID, &a.ProductID, &a.CreatedBy, &a.StartTime, &a.EndTime,
		&a.StartingBid, &a.CurrentBid, &a.CurrentLeader, &a.MinBidIncrement,
		&a.Status, &a.TotalBids, &a.Featured, &a.Views, &a.Version, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *PostgresLedger) AddAuction(ctx context.Context, auction model.Auction) (model.Auction, error) {
	query := `
	INSERT INTO auctions (id, product_id, created_by, start_time, end_time,
		starting_bid, current_bid, current_leader, min_bid_increment,
		status, total_bids, featured, views, version, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 0, 1, $13, $13)
	RETURNING` + auctionColumns

	row := r.db.QueryRowContext(ctx, query,
		auction.AuctionID, auction.ProductID, auction.CreatedBy, auction.StartTime, auction.EndTime,
		auction.StartingBid, auction.CurrentBid, auction.CurrentLeader, auction.MinBidIncrement,
		auction.Status, auction.TotalBids, auction.Featured, auction.CreatedAt)
	stored, err := scanAuction(row)
	if err != nil {
		return model.Auction{}, fmt.Errorf("repository.PostgresLedger.AddAuction: %w", err)
	}
	return stored, nil
}

func (r *PostgresLedger) GetAuction(ctx context.Context, auctionID string) (model.Auction, error) {
	query := `SELECT` + auctionColumns + ` FROM auctions WHERE id = $1`

	auction, err := scanAuction(r.db.QueryRowContext(ctx, query, auctionID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Auction{}, fmt.Errorf("repository.PostgresLedger.GetAuction: %w", auctionerrors.ErrAuctionNotFound)
	} else if err != nil {
		return model.Auction{}, fmt.Errorf("repository.PostgresLedger.GetAuction: %w", err)
	}
	return auction, nil
}

// updateAuctionTx performs the compare-and-swap update inside an optional
// transaction. On a miss it distinguishes not-found from version conflict.
func (r *PostgresLedger) updateAuctionTx(ctx context.Context, q interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}, auction model.Auction, expectedVersion int) (model.Auction, error) {
	query := `
	UPDATE auctions SET
		start_time = $3, end_time = $4, starting_bid = $5, current_bid = $6,
		current_leader = $7, min_bid_increment = $8, status = $9,
		total_bids = $10, featured = $11, version = version + 1, updated_at = now()
	WHERE id = $1 AND version = $2
	RETURNING` + auctionColumns

	row := q.QueryRowContext(ctx, query,
		auction.AuctionID, expectedVersion,
		auction.StartTime, auction.EndTime, auction.StartingBid, auction.CurrentBid,
		auction.CurrentLeader, auction.MinBidIncrement, auction.Status,
		auction.TotalBids, auction.Featured)
	updated, err := scanAuction(row)
	if errors.Is(err, sql.ErrNoRows) {
		var dummy int
		probe := r.db.QueryRowContext(ctx, "SELECT version FROM auctions WHERE id = $1", auction.AuctionID)
		if probeErr := probe.Scan(&dummy); errors.Is(probeErr, sql.ErrNoRows) {
			return model.Auction{}, auctionerrors.ErrAuctionNotFound
		}
		return model.Auction{}, auctionerrors.ErrVersionConflict
	} else if err != nil {
		return model.Auction{}, err
	}
	return updated, nil
}

func (r *PostgresLedger) UpdateAuction(ctx context.Context, auction model.Auction, expectedVersion int) (model.Auction, error) {
	updated, err := r.updateAuctionTx(ctx, r.db, auction, expectedVersion)
	if err != nil {
		return model.Auction{}, fmt.Errorf("repository.PostgresLedger.UpdateAuction: %w", err)
	}
	return updated, nil
}

func (r *PostgresLedger) CommitBid(ctx context.Context, auction model.Auction, expectedVersion int, bid model.Bid) (model.Auction, model.Bid, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Auction{}, model.Bid{}, fmt.Errorf("repository.PostgresLedger.CommitBid: failed to start transaction: %w", err)
	}

	updated, err := r.updateAuctionTx(ctx, tx, auction, expectedVersion)
	if err != nil {
		return model.Auction{}, model.Bid{}, fmt.Errorf("repository.PostgresLedger.CommitBid: %w", wrapRollbackErr(tx, err))
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE bids SET status = 'outbid' WHERE auction_id = $1 AND status = 'active'", bid.AuctionID)
	if err != nil {
		return model.Auction{}, model.Bid{}, fmt.Errorf("repository.PostgresLedger.CommitBid: %w", wrapRollbackErr(tx, err))
	}

	bid.Status = model.BidActive
	row := tx.QueryRowContext(ctx, `
	INSERT INTO bids (id, auction_id, bidder, amount, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at`,
		bid.BidID, bid.AuctionID, bid.Bidder, bid.Amount, bid.Status, bid.CreatedAt)
	if err = row.Scan(&bid.CreatedAt); err != nil {
		return model.Auction{}, model.Bid{}, fmt.Errorf("repository.PostgresLedger.CommitBid: %w", wrapRollbackErr(tx, err))
	}

	if err = tx.Commit(); err != nil {
		return model.Auction{}, model.Bid{}, fmt.Errorf("repository.PostgresLedger.CommitBid: failed to commit transaction: %w", err)
	}

	return updated, bid, nil
}

func (r *PostgresLedger) SettleBids(ctx context.Context, auctionID, winner string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository.PostgresLedger.SettleBids: failed to start transaction: %w", err)
	}

	if winner != "" {
		_, err = tx.ExecContext(ctx,
			"UPDATE bids SET status = 'won' WHERE auction_id = $1 AND bidder = $2 AND status = 'active'",
			auctionID, winner)
		if err != nil {
			return fmt.Errorf("repository.PostgresLedger.SettleBids: %w", wrapRollbackErr(tx, err))
		}
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE bids SET status = 'lost' WHERE auction_id = $1 AND status IN ('active', 'outbid')",
		auctionID)
	if err != nil {
		return fmt.Errorf("repository.PostgresLedger.SettleBids: %w", wrapRollbackErr(tx, err))
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("repository.PostgresLedger.SettleBids: failed to commit transaction: %w", err)
	}
	return nil
}

func (r *PostgresLedger) IncrementViews(ctx context.Context, auctionID string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE auctions SET views = views + 1 WHERE id = $1", auctionID)
	if err != nil {
		return fmt.Errorf("repository.PostgresLedger.IncrementViews: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("repository.PostgresLedger.IncrementViews: %w", auctionerrors.ErrAuctionNotFound)
	}
	return nil
}

func (r *PostgresLedger) queryAuctions(ctx context.Context, query string, args ...any) ([]model.Auction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	auctions := make([]model.Auction, 0)
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, err
		}
		auctions = append(auctions, a)
	}
	return auctions, rows.Err()
}

func (r *PostgresLedger) ListAuctions(ctx context.Context, filter AuctionFilter) ([]model.Auction, int, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	conditions := "WHERE ($1 = '' OR status = $1) AND ($2 = '' OR created_by = $2)"

	var total int
	row := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM auctions "+conditions,
		string(filter.Status), filter.Creator)
	if err := row.Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository.PostgresLedger.ListAuctions: %w", err)
	}

	query := `SELECT` + auctionColumns + ` FROM auctions ` + conditions + `
	ORDER BY created_at DESC
	LIMIT $3 OFFSET $4`

	auctions, err := r.queryAuctions(ctx, query, string(filter.Status), filter.Creator, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("repository.PostgresLedger.ListAuctions: %w", err)
	}
	return auctions, total, nil
}

func (r *PostgresLedger) ActiveAuctions(ctx context.Context) ([]model.Auction, error) {
	query := `SELECT` + auctionColumns + ` FROM auctions WHERE status = 'active' ORDER BY end_time ASC`
	auctions, err := r.queryAuctions(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.PostgresLedger.ActiveAuctions: %w", err)
	}
	return auctions, nil
}

func (r *PostgresLedger) AuctionsByCreator(ctx context.Context, creator string) ([]model.Auction, error) {
	query := `SELECT` + auctionColumns + ` FROM auctions WHERE created_by = $1 ORDER BY created_at DESC`
	auctions, err := r.queryAuctions(ctx, query, creator)
	if err != nil {
		return nil, fmt.Errorf("repository.PostgresLedger.AuctionsByCreator: %w", err)
	}
	return auctions, nil
}

func (r *PostgresLedger) WonAuctions(ctx context.Context, bidder string) ([]model.Auction, error) {
	query := `SELECT` + auctionColumns + `
	FROM auctions WHERE status = 'completed' AND current_leader = $1 ORDER BY end_time DESC`
	auctions, err := r.queryAuctions(ctx, query, bidder)
	if err != nil {
		return nil, fmt.Errorf("repository.PostgresLedger.WonAuctions: %w", err)
	}
	return auctions, nil
}

func (r *PostgresLedger) HasOpenAuctionForProduct(ctx context.Context, productID string) (bool, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id FROM auctions WHERE product_id = $1 AND status IN ('pending', 'active') LIMIT 1", productID)
	var dummy string
	err := row.Scan(&dummy)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	}
	return false, fmt.Errorf("repository.PostgresLedger.HasOpenAuctionForProduct: %w", err)
}

func (r *PostgresLedger) SweepCandidates(ctx context.Context) ([]model.Auction, error) {
	query := `SELECT` + auctionColumns + ` FROM auctions WHERE status IN ('pending', 'active')`
	auctions, err := r.queryAuctions(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.PostgresLedger.SweepCandidates: %w", err)
	}
	return auctions, nil
}

func (r *PostgresLedger) queryBids(ctx context.Context, query string, args ...any) ([]model.Bid, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := make([]model.Bid, 0)
	for rows.Next() {
		var b model.Bid
		err = rows.Scan(&b.BidID, &b.AuctionID, &b.Bidder, &b.Amount, &b.Status, &b.CreatedAt)
		if err != nil {
			return nil, err
		}
		bids = append(bids, b)
	}
	return bids, rows.Err()
}

func (r *PostgresLedger) BidsByAuction(ctx context.Context, auctionID string) ([]model.Bid, error) {
	query := `
	SELECT id, auction_id, bidder, amount, status, created_at
	FROM bids WHERE auction_id = $1 ORDER BY amount DESC`

	bids, err := r.queryBids(ctx, query, auctionID)
	if err != nil {
		return nil, fmt.Errorf("repository.PostgresLedger.BidsByAuction: %w", err)
	}
	if len(bids) == 0 {
		return nil, fmt.Errorf("repository.PostgresLedger.BidsByAuction: %w", auctionerrors.ErrNoBids)
	}
	return bids, nil
}

func (r *PostgresLedger) BidsByBidder(ctx context.Context, bidder string) ([]model.Bid, error) {
	query := `
	SELECT id, auction_id, bidder, amount, status, created_at
	FROM bids WHERE bidder = $1 ORDER BY created_at DESC`

	bids, err := r.queryBids(ctx, query, bidder)
	if err != nil {
		return nil, fmt.Errorf("repository.PostgresLedger.BidsByBidder: %w", err)
	}
	return bids, nil
}

func (r *PostgresLedger) ActiveBidsByBidder(ctx context.Context, bidder string) ([]model.Bid, error) {
	query := `
	SELECT id, auction_id, bidder, amount, status, created_at
	FROM bids WHERE bidder = $1 AND status = 'active' ORDER BY created_at DESC`

	bids, err := r.queryBids(ctx, query, bidder)
	if err != nil {
		return nil, fmt.Errorf("repository.PostgresLedger.ActiveBidsByBidder: %w", err)
	}
	return bids, nil
}

func wrapRollbackErr(tx *sql.Tx, err error) error {
	rollerr := tx.Rollback()
	if rollerr == nil {
		return err
	}
	return fmt.Errorf("failed to rollback transaction after previous error: %w, %w", rollerr, err)
}
