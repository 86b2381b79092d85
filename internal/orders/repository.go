package orders

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

var ErrNotFound = errors.New("order not found")

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error)
	Create(ctx context.Context, order Order) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	InsertLine(ctx context.Context, line OrderLine) (int64, error)
	DeleteLines(ctx context.Context, orderID int64) error
	GetLines(ctx context.Context, orderID int64) ([]OrderLine, error)
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
	"orderDate":  "order_date",
	"totalPrice": "total_price",
	"status":     "status",
	"createdAt":  "created_at",
}

func (r *repository) Get(ctx context.Context, id int64) (*Order, error) {
	const query = `
		SELECT id, customer_id, status, order_date, delivery_date, total_price, notes, created_at, updated_at
		FROM orders
		WHERE id = $1
	`
	o, err := scanOrder(r.db.QueryRow(ctx, query, id))
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
	o.Lines = lines
	return o, nil
}

func (r *repository) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if req.CustomerID != nil {
		conditions = append(conditions, fmt.Sprintf("customer_id = $%d", argPos))
		args = append(args, *req.CustomerID)
		argPos++
	}
	if req.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, string(*req.Status))
		argPos++
	}
	if req.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("order_date >= $%d", argPos))
		args = append(args, *req.DateFrom)
		argPos++
	}
	if req.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("order_date <= $%d", argPos))
		args = append(args, *req.DateTo)
		argPos++
	}
	if req.Search != "" {
		pattern := "%" + req.Search + "%"
		conditions = append(conditions, fmt.Sprintf("notes ILIKE $%d", argPos))
		args = append(args, pattern)
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM orders %s", whereClause)
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy := "order_date DESC"
	if col, ok := sortColumns[req.SortBy]; ok {
		orderBy = col
		if req.Direction == shared.SortDesc {
			orderBy += " DESC"
		}
	}

	query := fmt.Sprintf(`
		SELECT id, customer_id, status, order_date, delivery_date, total_price, notes, created_at, updated_at
		FROM orders
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

	var ordersOut []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		ordersOut = append(ordersOut, *o)
	}

	return ordersOut, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, order Order) (int64, error) {
	const query = `
		INSERT INTO orders (customer_id, status, order_date, delivery_date, total_price, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(ctx, query,
		order.CustomerID, string(order.Status), order.OrderDate, order.DeliveryDate, order.TotalPrice, order.Notes,
	).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	query := "UPDATE orders SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, col := range []string{"status", "order_date", "delivery_date", "total_price", "notes"} {
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
	tag, err := r.db.Exec(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) InsertLine(ctx context.Context, line OrderLine) (int64, error) {
	const query = `
		INSERT INTO order_lines (order_id, product_id, description, quantity, unit_price, thirteen_dozen, line_total, line_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(ctx, query,
		line.OrderID, line.ProductID, line.Description, line.Quantity,
		line.UnitPrice, line.ThirteenDozen, line.LineTotal, line.LineOrder,
	).Scan(&id)
	return id, err
}

func (r *repository) DeleteLines(ctx context.Context, orderID int64) error {
	_, err := r.db.Exec(ctx, "DELETE FROM order_lines WHERE order_id = $1", orderID)
	return err
}

func (r *repository) GetLines(ctx context.Context, orderID int64) ([]OrderLine, error) {
	const query = `
		SELECT id, order_id, product_id, description, quantity, unit_price, thirteen_dozen, line_total, line_order
		FROM order_lines
		WHERE order_id = $1
		ORDER BY line_order
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []OrderLine
	for rows.Next() {
		var l OrderLine
		var description pgtype.Text
		err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &description, &l.Quantity,
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

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	var status string
	var deliveryDate pgtype.Timestamptz
	var notes pgtype.Text
	var createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(&o.ID, &o.CustomerID, &status, &o.OrderDate, &deliveryDate, &o.TotalPrice, &notes, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	o.Status = OrderStatus(status)
	if deliveryDate.Valid {
		o.DeliveryDate = &deliveryDate.Time
	}
	if notes.Valid {
		o.Notes = &notes.String
	}
	if createdAt.Valid {
		o.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		o.UpdatedAt = updatedAt.Time
	}
	return &o, nil
}
