package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/ledgerline/internal/platform/db"
	"github.com/ledgerline/ledgerline/internal/shared"
)

var ErrNotFound = errors.New("sale not found")

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*Sale, error)
	List(ctx context.Context, req ListSalesRequest) ([]Sale, int, error)
	Create(ctx context.Context, sale Sale) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	InsertLine(ctx context.Context, line SaleLine) (int64, error)
	DeleteLines(ctx context.Context, saleID int64) error
	GetLines(ctx context.Context, saleID int64) ([]SaleLine, error)
	ReconcileOwes(ctx context.Context) (int64, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

var sortColumns = map[string]string{
	"saleDate":       "sale_date",
	"totalPrice":     "total_price",
	"partialPayment": "partial_payment",
	"createdAt":      "created_at",
}

func (r *repository) Get(ctx context.Context, id int64) (*Sale, error) {
	const query = `
		SELECT id, customer_id, sale_date, total_price, partial_payment, owes, notes, created_at, updated_at
		FROM sales
		WHERE id = $1
	`
	s, err := scanSale(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	lines, err := r.GetLines(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Lines = lines
	return s, nil
}

func buildFilter(req ListSalesRequest) (string, []interface{}, int) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if req.CustomerID != nil {
		conditions = append(conditions, fmt.Sprintf("customer_id = $%d", argPos))
		args = append(args, *req.CustomerID)
		argPos++
	}
	if req.Owes != nil {
		conditions = append(conditions, fmt.Sprintf("owes = $%d", argPos))
		args = append(args, *req.Owes)
		argPos++
	}
	if req.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("sale_date >= $%d", argPos))
		args = append(args, *req.DateFrom)
		argPos++
	}
	if req.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("sale_date <= $%d", argPos))
		args = append(args, *req.DateTo)
		argPos++
	}
	if req.Search != "" {
		conditions = append(conditions, fmt.Sprintf("notes ILIKE $%d", argPos))
		args = append(args, "%"+req.Search+"%")
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}
	return whereClause, args, argPos
}

func (r *repository) List(ctx context.Context, req ListSalesRequest) ([]Sale, int, error) {
	whereClause, args, argPos := buildFilter(req)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM sales %s", whereClause)
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy := "sale_date DESC"
	if col, ok := sortColumns[req.SortBy]; ok {
		orderBy = col
		if req.Direction == shared.SortDesc {
			orderBy += " DESC"
		}
	}

	query := fmt.Sprintf(`
		SELECT id, customer_id, sale_date, total_price, partial_payment, owes, notes, created_at, updated_at
		FROM sales
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, whereClause, orderBy, argPos, argPos+1)
	args = append(args, req.Page.Limit, req.Page.Skip)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var salesOut []Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, 0, err
		}
		salesOut = append(salesOut, *s)
	}

	return salesOut, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, sale Sale) (int64, error) {
	const query = `
		INSERT INTO sales (customer_id, sale_date, total_price, partial_payment, owes, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(ctx, query,
		sale.CustomerID, sale.SaleDate, sale.TotalPrice, sale.PartialPayment, sale.Owes, sale.Notes,
	).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	query := "UPDATE sales SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, col := range []string{"sale_date", "total_price", "partial_payment", "owes", "notes"} {
		if v, ok := updates[col]; ok {
			query += fmt.Sprintf(", %s = $%d", col, argPos)
			args = append(args, v)
			argPos++
		}
	}

	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	if err := r.DeleteLines(ctx, id); err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, "DELETE FROM sales WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) InsertLine(ctx context.Context, line SaleLine) (int64, error) {
	const query = `
		INSERT INTO sale_lines (sale_id, product_id, description, quantity, unit_price, thirteen_dozen, line_total, line_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(ctx, query,
		line.SaleID, line.ProductID, line.Description, line.Quantity,
		line.UnitPrice, line.ThirteenDozen, line.LineTotal, line.LineOrder,
	).Scan(&id)
	return id, err
}

func (r *repository) DeleteLines(ctx context.Context, saleID int64) error {
	_, err := r.db.Exec(ctx, "DELETE FROM sale_lines WHERE sale_id = $1", saleID)
	return err
}

func (r *repository) GetLines(ctx context.Context, saleID int64) ([]SaleLine, error) {
	const query = `
		SELECT id, sale_id, product_id, description, quantity, unit_price, thirteen_dozen, line_total, line_order
		FROM sale_lines
		WHERE sale_id = $1
		ORDER BY line_order
	`
	rows, err := r.db.Query(ctx, query, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []SaleLine
	for rows.Next() {
		var l SaleLine
		var description pgtype.Text
		err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &description, &l.Quantity,
			&l.UnitPrice, &l.ThirteenDozen, &l.LineTotal, &l.LineOrder)
		if err != nil {
			return nil, err
		}
		if description.Valid {
			l.Description = &description.String
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// ReconcileOwes refreshes the stored owes flag wherever it drifted from the
// partial payment versus total price comparison. Returns the number of rows
// corrected.
func (r *repository) ReconcileOwes(ctx context.Context) (int64, error) {
	const query = `
		UPDATE sales
		SET owes = (partial_payment < total_price), updated_at = NOW()
		WHERE owes IS DISTINCT FROM (partial_payment < total_price)
	`
	tag, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanSale(row pgx.Row) (*Sale, error) {
	var s Sale
	var customerID pgtype.Int8
	var notes pgtype.Text
	var createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(&s.ID, &customerID, &s.SaleDate, &s.TotalPrice, &s.PartialPayment, &s.Owes, &notes, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if customerID.Valid {
		s.CustomerID = &customerID.Int64
	}
	if notes.Valid {
		s.Notes = &notes.String
	}
	if createdAt.Valid {
		s.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		s.UpdatedAt = updatedAt.Time
	}
	return &s, nil
}
