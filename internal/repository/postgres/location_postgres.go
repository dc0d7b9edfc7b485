package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"eggslist/internal/model"
	"eggslist/internal/repository"
)

// LocationPostgres is a PostgreSQL/PostGIS implementation of repository.LocationRepository.
type LocationPostgres struct {
	db *sql.DB
}

// NewLocationPostgres creates a new LocationPostgres repository.
func NewLocationPostgres(db *sql.DB) *LocationPostgres {
	return &LocationPostgres{db: db}
}

var _ repository.LocationRepository = (*LocationPostgres)(nil)

// ListStates returns every state with its country name.
func (r *LocationPostgres) ListStates(ctx context.Context) ([]model.StateView, error) {
	const q = `
		SELECT s.slug, s.name, co.name
		FROM location_states s
		JOIN location_countries co ON co.id = s.country_id
		ORDER BY s.name, s.id
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.StateView, 0)
	for rows.Next() {
		var v model.StateView
		if err := rows.Scan(&v.Slug, &v.Name, &v.Country); err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

// ListCities returns cities joined with state and country, narrowed by f.
func (r *LocationPostgres) ListCities(ctx context.Context, f repository.CityFilter) ([]model.CityView, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.StateSlug != "" {
		where = append(where, "s.slug = "+arg(f.StateSlug))
	}
	if f.CountrySlug != "" {
		where = append(where, "co.slug = "+arg(f.CountrySlug))
	}
	for _, term := range searchTerms(f.Search) {
		p := arg("%" + escapeLike(term) + "%")
		where = append(where, fmt.Sprintf("(c.name ILIKE %[1]s OR s.name ILIKE %[1]s OR co.name ILIKE %[1]s)", p))
	}

	q := `
		SELECT c.slug, c.name, s.full_name, s.name, co.name
		FROM location_cities c
		JOIN location_states s ON s.id = c.state_id
		JOIN location_countries co ON co.id = s.country_id`
	if len(where) > 0 {
		q += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	q += "\n\t\tORDER BY c.name, c.id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.CityView, 0)
	for rows.Next() {
		var v model.CityView
		if err := rows.Scan(&v.Slug, &v.Name, &v.StateFullName, &v.State, &v.Country); err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

const zipCodeSelect = `
		SELECT z.slug, z.name, s.name, s.full_name, c.name
		FROM location_zip_codes z
		JOIN location_cities c ON c.id = z.city_id
		JOIN location_states s ON s.id = c.state_id`

// ListZipCodes returns zip codes joined with city and state, narrowed by f.
func (r *LocationPostgres) ListZipCodes(ctx context.Context, f repository.ZipCodeFilter) ([]model.ZipCodeView, error) {
	var (
		where []string
		args  []any
	)
	if f.Name != "" {
		args = append(args, f.Name)
		where = append(where, fmt.Sprintf("z.name = $%d", len(args)))
	}
	if f.CitySlug != "" {
		args = append(args, f.CitySlug)
		where = append(where, fmt.Sprintf("c.slug = $%d", len(args)))
	}
	if f.StateSlug != "" {
		args = append(args, f.StateSlug)
		where = append(where, fmt.Sprintf("s.slug = $%d", len(args)))
	}

	q := zipCodeSelect
	if len(where) > 0 {
		q += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	q += "\n\t\tORDER BY z.name, z.id"

	return r.queryZipCodes(ctx, q, args...)
}

// NearbyZipCodes returns zip codes whose point lies within radiusMeters of p.
func (r *LocationPostgres) NearbyZipCodes(ctx context.Context, p model.GeoPoint, radiusMeters float64) ([]model.ZipCodeView, error) {
	q := zipCodeSelect + `
		WHERE z.location IS NOT NULL
		  AND ST_DWithin(z.location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3)
		ORDER BY ST_Distance(z.location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography), z.id`
	return r.queryZipCodes(ctx, q, p.Lng, p.Lat, radiusMeters)
}

func (r *LocationPostgres) queryZipCodes(ctx context.Context, q string, args ...any) ([]model.ZipCodeView, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ZipCodeView, 0)
	for rows.Next() {
		var v model.ZipCodeView
		if err := rows.Scan(&v.Slug, &v.Name, &v.State, &v.StateFullName, &v.City); err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

// FindIDBySlug resolves a slug to its primary key within level.
func (r *LocationPostgres) FindIDBySlug(ctx context.Context, level repository.LocationLevel, slug string) (int64, error) {
	if !level.Valid() {
		return 0, fmt.Errorf("unknown location level %q", level)
	}
	var id int64
	q := fmt.Sprintf("SELECT id FROM %s WHERE slug = $1", level)
	if err := r.db.QueryRowContext(ctx, q, slug).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// SlugExists reports whether slug is already taken within level.
func (r *LocationPostgres) SlugExists(ctx context.Context, level repository.LocationLevel, slug string) (bool, error) {
	if !level.Valid() {
		return false, fmt.Errorf("unknown location level %q", level)
	}
	var exists bool
	q := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE slug = $1)", level)
	if err := r.db.QueryRowContext(ctx, q, slug).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// CreateCountry inserts a country and returns the stored row.
func (r *LocationPostgres) CreateCountry(ctx context.Context, c *model.Country) (*model.Country, error) {
	const q = `
		INSERT INTO location_countries (name, slug)
		VALUES ($1, $2)
		RETURNING id, name, slug
	`
	var out model.Country
	if err := r.db.QueryRowContext(ctx, q, c.Name, c.Slug).Scan(&out.ID, &out.Name, &out.Slug); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateState inserts a state and returns the stored row.
func (r *LocationPostgres) CreateState(ctx context.Context, s *model.State) (*model.State, error) {
	const q = `
		INSERT INTO location_states (country_id, name, full_name, slug)
		VALUES ($1, $2, $3, $4)
		RETURNING id, country_id, name, full_name, slug
	`
	var out model.State
	if err := r.db.QueryRowContext(ctx, q, s.CountryID, s.Name, s.FullName, s.Slug).
		Scan(&out.ID, &out.CountryID, &out.Name, &out.FullName, &out.Slug); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCity inserts a city and returns the stored row.
func (r *LocationPostgres) CreateCity(ctx context.Context, c *model.City) (*model.City, error) {
	const q = `
		INSERT INTO location_cities (state_id, name, slug, location)
		VALUES ($1, $2, $3, ST_SetSRID(ST_MakePoint($4, $5), 4326)::geography)
		RETURNING id, state_id, name, slug, ST_Y(location::geometry), ST_X(location::geometry)
	`
	lng, lat := pointArgs(c.Location)
	var (
		out        model.City
		oLat, oLng sql.NullFloat64
	)
	if err := r.db.QueryRowContext(ctx, q, c.StateID, c.Name, c.Slug, lng, lat).
		Scan(&out.ID, &out.StateID, &out.Name, &out.Slug, &oLat, &oLng); err != nil {
		return nil, err
	}
	out.Location = scanPoint(oLat, oLng)
	return &out, nil
}

// CreateZipCode inserts a zip code and returns the stored row.
func (r *LocationPostgres) CreateZipCode(ctx context.Context, z *model.ZipCode) (*model.ZipCode, error) {
	const q = `
		INSERT INTO location_zip_codes (city_id, name, slug, system_name, location)
		VALUES ($1, $2, $3, $4, ST_SetSRID(ST_MakePoint($5, $6), 4326)::geography)
		RETURNING id, city_id, name, slug, system_name, ST_Y(location::geometry), ST_X(location::geometry)
	`
	lng, lat := pointArgs(z.Location)
	var (
		out        model.ZipCode
		oLat, oLng sql.NullFloat64
	)
	if err := r.db.QueryRowContext(ctx, q, z.CityID, z.Name, z.Slug, z.SystemName, lng, lat).
		Scan(&out.ID, &out.CityID, &out.Name, &out.Slug, &out.SystemName, &oLat, &oLng); err != nil {
		return nil, err
	}
	out.Location = scanPoint(oLat, oLng)
	return &out, nil
}

// Delete removes the row identified by slug. It returns sql.ErrNoRows when nothing matched.
func (r *LocationPostgres) Delete(ctx context.Context, level repository.LocationLevel, slug string) error {
	if !level.Valid() {
		return fmt.Errorf("unknown location level %q", level)
	}
	res, err := r.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE slug = $1", level), slug)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// pointArgs returns (lng, lat) query arguments; both are NULL for a missing
// point, which makes ST_MakePoint and therefore the stored location NULL.
func pointArgs(p *model.GeoPoint) (sql.NullFloat64, sql.NullFloat64) {
	if p == nil {
		return sql.NullFloat64{}, sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: p.Lng, Valid: true}, sql.NullFloat64{Float64: p.Lat, Valid: true}
}

func scanPoint(lat, lng sql.NullFloat64) *model.GeoPoint {
	if !lat.Valid || !lng.Valid {
		return nil
	}
	return &model.GeoPoint{Lat: lat.Float64, Lng: lng.Float64}
}

func searchTerms(s string) []string {
	return strings.Fields(strings.ReplaceAll(s, ",", " "))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
