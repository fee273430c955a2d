package delivery

import "sort"

// 州ごとの固定配送料（NGN）。距離計算はやめてフラットな表引きにした。
// 表に無い州へは配送しない。
var stateFees = map[string]float64{
	"Abia":       2200,
	"Adamawa":    3000,
	"AkwaIbom":   2400,
	"Anambra":    2200,
	"Bauchi":     3000,
	"Bayelsa":    2500,
	"Benue":      2600,
	"Borno":      3200,
	"CrossRiver": 2400,
	"Delta":      2200,
	"Ebonyi":     2300,
	"Edo":        2000,
	"Ekiti":      1800,
	"Enugu":      2300,
	"Gombe":      3000,
	"Imo":        2200,
	"Jigawa":     3100,
	"Kaduna":     2700,
	"Kano":       2800,
	"Katsina":    3000,
	"Kebbi":      3100,
	"Kogi":       2000,
	"Kwara":      1800,
	"Lagos":      500,
	"Nasarawa":   2400,
	"Niger":      2300,
	"Ogun":       800,
	"Ondo":       1600,
	"Osun":       1500,
	"Oyo":        1200,
	"Plateau":    2700,
	"Rivers":     2400,
	"Sokoto":     3200,
	"Taraba":     3100,
	"Yobe":       3200,
	"Zamfara":    3100,
}

// Fee は州名から1個あたりの配送料を引く。未対応の州は ok=false。
func Fee(state string) (float64, bool) {
	fee, ok := stateFees[state]
	return fee, ok
}

// FeeForQuantity は配送料 × 商品点数。
func FeeForQuantity(state string, quantity int) (float64, bool) {
	fee, ok := Fee(state)
	if !ok {
		return 0, false
	}
	return fee * float64(quantity), true
}

// States は配送可能な州の一覧（ソート済み）。
func States() []string {
	states := make([]string, 0, len(stateFees))
	for s := range stateFees {
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}
