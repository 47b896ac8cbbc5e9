package cache

import "fmt"

func KeyRouteGeoJSON(routeID string) string {
	return fmt.Sprintf("geojson:%s", routeID)
}
