package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/winery-api/internal/domain"
	"github.com/jhoicas/winery-api/internal/domain/entity"
	"github.com/jhoicas/winery-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

var userColumns = []string{"id", "username", "password_hash", "role", "active", "created_at", "updated_at"}

var userSort = sortSpec{
	columns: map[string]string{
		"id":        "id",
		"username":  "username",
		"role":      "role",
		"active":    "active",
		"createdAt": "created_at",
	},
	defaultCol: "username",
	tieBreaker: "id",
}

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	db Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db Querier) *UserRepo {
	return &UserRepo{db: db}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query, args, err := psql.Insert("users").
		Columns("username", "password_hash", "role", "active").
		Values(u.Username, u.PasswordHash, u.Role, u.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert user: %w", err)
	}
	if err := querierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return wrapErr("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.findOne(ctx, "get user by id", sq.Eq{"id": id})
}

// GetByUsername obtiene un usuario por username exacto; (nil, nil) si no existe.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, "get user by username", sq.Eq{"username": username})
}

func (r *UserRepo) findOne(ctx context.Context, op string, where sq.Sqlizer) (*entity.User, error) {
	query, args, err := psql.Select(userColumns...).From("users").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}
	u, err := scanUser(querierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr(op, err)
	}
	return u, nil
}

// Update actualiza username, hash, rol y estado.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query, args, err := psql.Update("users").
		Set("username", u.Username).
		Set("password_hash", u.PasswordHash).
		Set("role", u.Role).
		Set("active", u.Active).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": u.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update user: %w", err)
	}
	if err := querierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("update user %d: %w", u.ID, domain.ErrNotFound)
		}
		return wrapErr("update user", err)
	}
	return nil
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	tag, err := querierFromCtx(ctx, r.db).Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete user %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List lista usuarios con paginación.
func (r *UserRepo) List(ctx context.Context, page repository.PageQuery) ([]*entity.User, int64, error) {
	q := querierFromCtx(ctx, r.db)

	total, err := countRows(ctx, q, psql.Select("COUNT(*)").From("users"), "count users")
	if err != nil {
		return nil, 0, err
	}

	query, args, err := paginate(psql.Select(userColumns...).From("users"), userSort, page).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list users: %w", err)
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapErr("list users", err)
	}
	defer rows.Close()

	list := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, wrapErr("scan user", err)
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapErr("list users", err)
	}
	return list, total, nil
}

// CountActiveByRole cuenta usuarios activos con el rol indicado.
func (r *UserRepo) CountActiveByRole(ctx context.Context, role string) (int64, error) {
	return countRows(ctx, querierFromCtx(ctx, r.db),
		psql.Select("COUNT(*)").From("users").Where(sq.Eq{"role": role, "active": true}),
		"count active users by role")
}
