package lookup

// Default returns the tables for the 2018 Texas primaries. Each primary has
// two AP race IDs, one per party. These are editorial data: the newsroom
// decides which races are of interest, everything else is filtered out.
func Default() *Tables {
	return New(defaultRaceTitles(), defaultPrimaryIDs())
}

func defaultRaceTitles() map[int]string {
	return map[int]string{
		44010: "Governor",
		48466: "Governor",
		48428: "U.S. Senate",
		49021: "U.S. Senate",
		44175: "U.S. House - District 21",
		48456: "U.S. House - District 21",
		48458: "U.S. House - District 23",
		44177: "U.S. House - District 23",
		44015: "Land Commissioner",
		48652: "Land Commissioner",
		49394: "U.S. House - District 35",
		49395: "U.S. House - District 35",
		44011: "Lieutenant Governor",
		48468: "Lieutenant Governor",
		44016: "Agriculture Commissioner",
		48650: "Agriculture Commissioner",
		44017: "Railroad Commissioner",
		49050: "Railroad Commissioner",
		48606: "State Representative - District 121",
		48960: "State Representative - District 121",
		48607: "State Representative - District 122",
		48961: "State Representative - District 122",
		44347: "State Representative - District 116",
		48806: "State Representative - District 116",
		48602: "State Representative - District 117",
		44348: "State Representative - District 117",
		44349: "State Representative - District 118",
		48808: "State Representative - District 118",
		49006: "State Representative - District 124",
		44355: "State Representative - District 124",
	}
}

func defaultPrimaryIDs() map[string]int {
	return map[string]int{
		"Governor":                               0,
		"U.S. Senate":                            1,
		"U.S. House - District 21":               2,
		"U.S. House - District 23":               3,
		"Land Commissioner":                      4,
		"U.S. House - District 35":               5,
		"Lieutenant Governor":                    6,
		"Agriculture Commissioner":               7,
		"Railroad Commissioner":                  8,
		"Bexar County District Attorney":         9,
		"District Clerk":                         10,
		"County Clerk":                           11,
		"County Commissioner Pct. 2":             12,
		"County Probate Court-at-Law No 1 Judge": 13,
		"County Chair":                           14,
		"State Representative - District 121":    15,
		"State Representative - District 122":    16,
		"State Representative - District 116":    17,
		"State Representative - District 117":    18,
		"State Representative - District 118":    19,
		"State Representative - District 124":    20,
	}
}
