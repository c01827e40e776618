package services

import (
	"matwana/internal/domain/models"
	"matwana/internal/repositories"
)

// CatalogService serves route and trip reads for search, listing and
// quick booking. Everything here is read-only.
type CatalogService struct {
	CatalogRepo repositories.CatalogRepository
	BookingRepo repositories.BookingRepository
}

// TripWithSeats annotates a trip with its advisory seat availability.
type TripWithSeats struct {
	models.Trip
	SeatsAvailable int `json:"seats_available"`
}

// RouteDetails bundles a route with its next scheduled departures.
type RouteDetails struct {
	Route         models.Route    `json:"route"`
	UpcomingTrips []TripWithSeats `json:"upcoming_trips"`
}

func (s CatalogService) SearchRoutes(q string) ([]models.Route, error) {
	return s.CatalogRepo.SearchRoutes(q, 10)
}

func (s CatalogService) ListRoutes(f repositories.RouteFilter) ([]models.Route, error) {
	return s.CatalogRepo.ListRoutes(f)
}

func (s CatalogService) GetRouteDetails(routeID int64) (RouteDetails, error) {
	route, err := s.CatalogRepo.GetRoute(routeID)
	if err != nil {
		return RouteDetails{}, err
	}
	trips, err := s.CatalogRepo.UpcomingTrips(routeID, 5)
	if err != nil {
		return RouteDetails{}, err
	}
	annotated, err := s.annotateSeats(trips)
	if err != nil {
		return RouteDetails{}, err
	}
	return RouteDetails{Route: route, UpcomingTrips: annotated}, nil
}

// QuickBook finds scheduled trips matching the endpoints on a travel date.
func (s CatalogService) QuickBook(startPoint, endPoint, date string) ([]TripWithSeats, error) {
	trips, err := s.CatalogRepo.FindTrips(startPoint, endPoint, date)
	if err != nil {
		return nil, err
	}
	return s.annotateSeats(trips)
}

func (s CatalogService) annotateSeats(trips []models.Trip) ([]TripWithSeats, error) {
	out := make([]TripWithSeats, 0, len(trips))
	for _, t := range trips {
		taken, err := s.BookingRepo.CountForTrip(nil, t.ID)
		if err != nil {
			return nil, err
		}
		seats := t.Capacity - taken
		if seats < 0 {
			seats = 0
		}
		out = append(out, TripWithSeats{Trip: t, SeatsAvailable: seats})
	}
	return out, nil
}
