// Package apinum validates American Petroleum Institute well
// identifiers of the form NN-NNN-NNNNN (state-county-well), optionally
// extended with directional sidetrack and event codes
// (NN-NNN-NNNNN-NN-NN).
package apinum

import "strings"

// StateCodes maps the first two digits of an API number to the state
// (or offshore area) they designate.
var StateCodes = map[string]string{
	"01": "Alabama",
	"02": "Arizona",
	"03": "Arkansas",
	"04": "California",
	"05": "Colorado",
	"06": "Connecticut",
	"07": "Delaware",
	"08": "District of Columbia",
	"09": "Florida",
	"10": "Georgia",
	"11": "Idaho",
	"12": "Illinois",
	"13": "Indiana",
	"14": "Iowa",
	"15": "Kansas",
	"16": "Kentucky",
	"17": "Louisiana",
	"18": "Maine",
	"19": "Maryland",
	"20": "Massachusetts",
	"21": "Michigan",
	"22": "Minnesota",
	"23": "Mississippi",
	"24": "Missouri",
	"25": "Montana",
	"26": "Nebraska",
	"27": "Nevada",
	"28": "New Hampshire",
	"29": "New Jersey",
	"30": "New Mexico",
	"31": "New York",
	"32": "North Carolina",
	"33": "North Dakota",
	"34": "Ohio",
	"35": "Oklahoma",
	"36": "Oregon",
	"37": "Pennsylvania",
	"38": "Rhode Island",
	"39": "South Carolina",
	"40": "South Dakota",
	"41": "Tennessee",
	"42": "Texas",
	"43": "Utah",
	"44": "Vermont",
	"45": "Virginia",
	"46": "Washington",
	"47": "West Virginia",
	"48": "Wisconsin",
	"49": "Wyoming",
	"50": "Alaska",
	"51": "Hawaii",
	"55": "Alaska Offshore",
	"56": "Pacific Coast Offshore",
	"60": "Northern Gulf of Mexico",
	"61": "Atlantic Coast Offshore",
}

// Valid reports whether apiNum follows the API number schema with a
// recognized state code. County and well components are only checked
// for shape, not existence.
func Valid(apiNum string) bool {
	parts := strings.Split(apiNum, "-")
	if len(parts) != 3 && len(parts) != 5 {
		return false
	}
	if _, ok := StateCodes[parts[0]]; !ok {
		return false
	}
	if len(parts[1]) != 3 || len(parts[2]) != 5 {
		return false
	}
	if len(parts) == 5 && (len(parts[3]) != 2 || len(parts[4]) != 2) {
		return false
	}
	for _, part := range parts {
		for _, r := range part {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

// StateCode returns the state code component of an API number.
func StateCode(apiNum string) string {
	if len(apiNum) < 2 {
		return ""
	}
	return apiNum[:2]
}
