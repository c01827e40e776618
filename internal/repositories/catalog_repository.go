package repositories

import (
	"database/sql"
	"errors"
	"strings"

	"matwana/internal/domain"
	"matwana/internal/domain/models"
)

// CatalogRepository serves the read-mostly route/trip reference data. The
// booking core never mutates it; scheduling and fleet admin own writes.
type CatalogRepository struct {
	DB *sql.DB
}

// RouteFilter narrows ListRoutes. Fare bounds are cents; zero means unset.
type RouteFilter struct {
	StartPoint string
	EndPoint   string
	SaccoID    int64
	MinFare    int64
	MaxFare    int64
}

const routeColumns = `
	r.id, r.name, r.sacco_id, COALESCE(s.name, ''), r.start_point, r.end_point,
	r.standard_fare, r.distance_km, r.estimated_duration_minutes, r.is_active`

func scanRoute(row interface{ Scan(...any) error }) (models.Route, error) {
	var rt models.Route
	err := row.Scan(
		&rt.ID, &rt.Name, &rt.SaccoID, &rt.SaccoName, &rt.StartPoint, &rt.EndPoint,
		&rt.StandardFare, &rt.DistanceKm, &rt.EstimatedDurationMinutes, &rt.IsActive,
	)
	return rt, err
}

func (r CatalogRepository) GetRoute(id int64) (models.Route, error) {
	row := r.DB.QueryRow(`
		SELECT `+routeColumns+`
		FROM routes r LEFT JOIN saccos s ON s.id = r.sacco_id
		WHERE r.id = ? LIMIT 1`, id)
	rt, err := scanRoute(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Route{}, domain.NotFoundError{Resource: "route", Err: err}
		}
		return models.Route{}, domain.InternalError{Err: err}
	}
	return rt, nil
}

// SearchRoutes matches name, endpoints or sacco name, active routes only.
func (r CatalogRepository) SearchRoutes(q string, limit int) ([]models.Route, error) {
	if limit <= 0 {
		limit = 10
	}
	like := "%" + strings.TrimSpace(q) + "%"
	rows, err := r.DB.Query(`
		SELECT `+routeColumns+`
		FROM routes r LEFT JOIN saccos s ON s.id = r.sacco_id
		WHERE r.is_active = 1
		  AND (r.name LIKE ? OR r.start_point LIKE ? OR r.end_point LIKE ? OR s.name LIKE ?)
		ORDER BY r.name LIMIT ?`, like, like, like, like, limit)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()
	return collectRoutes(rows)
}

func (r CatalogRepository) ListRoutes(f RouteFilter) ([]models.Route, error) {
	where := []string{"r.is_active = 1"}
	args := []any{}
	if f.StartPoint != "" {
		where = append(where, "r.start_point LIKE ?")
		args = append(args, "%"+f.StartPoint+"%")
	}
	if f.EndPoint != "" {
		where = append(where, "r.end_point LIKE ?")
		args = append(args, "%"+f.EndPoint+"%")
	}
	if f.SaccoID > 0 {
		where = append(where, "r.sacco_id = ?")
		args = append(args, f.SaccoID)
	}
	if f.MinFare > 0 {
		where = append(where, "r.standard_fare >= ?")
		args = append(args, f.MinFare)
	}
	if f.MaxFare > 0 {
		where = append(where, "r.standard_fare <= ?")
		args = append(args, f.MaxFare)
	}

	rows, err := r.DB.Query(`
		SELECT `+routeColumns+`
		FROM routes r LEFT JOIN saccos s ON s.id = r.sacco_id
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY r.name`, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()
	return collectRoutes(rows)
}

func collectRoutes(rows *sql.Rows) ([]models.Route, error) {
	out := []models.Route{}
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

const tripColumns = `
	t.id, t.route_id, t.matatu_id, t.scheduled_departure, t.status,
	r.name, r.start_point, r.end_point, r.standard_fare,
	COALESCE(m.plate_number, ''), COALESCE(m.capacity, 0)`

func scanTrip(row interface{ Scan(...any) error }) (models.Trip, error) {
	var t models.Trip
	err := row.Scan(
		&t.ID, &t.RouteID, &t.MatatuID, &t.ScheduledDeparture, &t.Status,
		&t.RouteName, &t.StartPoint, &t.EndPoint, &t.StandardFare,
		&t.PlateNumber, &t.Capacity,
	)
	return t, err
}

// GetBookableTrip resolves the trip for booking: it must belong to the
// route and still be open. Inside the booking transaction the row is read
// FOR UPDATE so concurrent capacity checks on the same trip serialize.
func (r CatalogRepository) GetBookableTrip(q Queryer, tripID, routeID int64, forUpdate bool) (models.Trip, error) {
	if q == nil {
		q = r.DB
	}
	query := `
		SELECT ` + tripColumns + `
		FROM trips t
		JOIN routes r ON r.id = t.route_id
		LEFT JOIN matatus m ON m.id = t.matatu_id
		WHERE t.id = ? AND t.route_id = ? AND t.status IN (?, ?)`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	t, err := scanTrip(q.QueryRow(query, tripID, routeID, models.TripScheduled, models.TripActive))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Trip{}, domain.NotFoundError{Resource: "trip", Err: err}
		}
		return models.Trip{}, domain.InternalError{Err: err}
	}
	return t, nil
}

// UpcomingTrips lists future scheduled departures for a route.
func (r CatalogRepository) UpcomingTrips(routeID int64, limit int) ([]models.Trip, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := r.DB.Query(`
		SELECT `+tripColumns+`
		FROM trips t
		JOIN routes r ON r.id = t.route_id
		LEFT JOIN matatus m ON m.id = t.matatu_id
		WHERE t.route_id = ? AND t.status = ? AND t.scheduled_departure >= NOW()
		ORDER BY t.scheduled_departure LIMIT ?`, routeID, models.TripScheduled, limit)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()
	return collectTrips(rows)
}

// FindTrips powers quick booking: scheduled trips on routes matching the
// endpoints, departing on the given date (YYYY-MM-DD).
func (r CatalogRepository) FindTrips(startPoint, endPoint, date string) ([]models.Trip, error) {
	rows, err := r.DB.Query(`
		SELECT `+tripColumns+`
		FROM trips t
		JOIN routes r ON r.id = t.route_id
		LEFT JOIN matatus m ON m.id = t.matatu_id
		WHERE r.is_active = 1
		  AND r.start_point LIKE ? AND r.end_point LIKE ?
		  AND t.status = ? AND DATE(t.scheduled_departure) = ?
		ORDER BY t.scheduled_departure`,
		"%"+startPoint+"%", "%"+endPoint+"%", models.TripScheduled, date)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()
	return collectTrips(rows)
}

func collectTrips(rows *sql.Rows) ([]models.Trip, error) {
	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}
