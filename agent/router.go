package agent

import "strings"

// Route is the intent category assigned to a user message. It selects which
// path of the turn graph executes.
type Route string

const (
	RouteAttitudeChange Route = "att_change"
	RouteMostLoved      Route = "by_loves"
	RouteDifficulty     Route = "by_difficulty"
	RouteDiet           Route = "by_diet"
	RouteWeight         Route = "by_weight"
	RouteIngredients    Route = "by_ingredients"
	RouteDefault        Route = "rag_answer"
)

// routeRule pairs a predicate with the route it selects.
type routeRule struct {
	route Route
	match func(msg string) bool
}

// routeTable is evaluated in order, first match wins. The ordering is
// load-bearing: a message naming Juna's mood must route to the attitude
// change even when it also mentions an ingredient.
var routeTable = []routeRule{
	{RouteAttitudeChange, func(msg string) bool {
		return strings.Contains(msg, "juna") && containsAny(msg,
			"mean", "galak", "kejam", "garang", "nice", "random", "attitude", "sikap")
	}},
	{RouteMostLoved, func(msg string) bool {
		return containsAny(msg, "paling disukai", "most loved", "favorit")
	}},
	{RouteDifficulty, func(msg string) bool {
		return containsAny(msg, "mudah", "gampang", "sedang", "cukup rumit", "sulit", "ribet", "susah", "cepat", "lama")
	}},
	{RouteDiet, func(msg string) bool {
		return containsAny(msg, "vegan", "non vegan", "tanpa daging")
	}},
	{RouteWeight, func(msg string) bool {
		return containsAny(msg, "ringan", "berat")
	}},
	{RouteIngredients, func(msg string) bool {
		return containsAny(msg, "ayam", "sapi", "ikan", "kambing", "udang", "telur", "bahan", "punya", "ada")
	}},
}

// Classify assigns exactly one route to a user message. Matching is case
// insensitive and tolerates a leading "user:" transcript prefix. Messages
// matching nothing fall through to RouteDefault, so the function is total.
func Classify(message string) Route {
	msg := strings.ToLower(strings.TrimSpace(message))
	msg = strings.TrimSpace(strings.TrimPrefix(msg, "user:"))

	for _, rule := range routeTable {
		if rule.match(msg) {
			return rule.route
		}
	}
	return RouteDefault
}

func containsAny(msg string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(msg, k) {
			return true
		}
	}
	return false
}
