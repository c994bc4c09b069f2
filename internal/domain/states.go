package domain

import (
	"strconv"
	"strings"
)

// Sentinel is the first cell of the first data row in every FARS export.
const Sentinel = "Alabama"

// NationalName is the state cell of the national total row that follows the
// 51 state rows.
const NationalName = "USA"

// StateAbbreviations maps full state names, as written in the FARS exports,
// to USPS codes.
var StateAbbreviations = map[string]string{
	"Alabama":              "AL",
	"Alaska":               "AK",
	"Arizona":              "AZ",
	"Arkansas":             "AR",
	"California":           "CA",
	"Colorado":             "CO",
	"Connecticut":          "CT",
	"Delaware":             "DE",
	"District of Columbia": "DC",
	"Florida":              "FL",
	"Georgia":              "GA",
	"Hawaii":               "HI",
	"Idaho":                "ID",
	"Illinois":             "IL",
	"Indiana":              "IN",
	"Iowa":                 "IA",
	"Kansas":               "KS",
	"Kentucky":             "KY",
	"Louisiana":            "LA",
	"Maine":                "ME",
	"Maryland":             "MD",
	"Massachusetts":        "MA",
	"Michigan":             "MI",
	"Minnesota":            "MN",
	"Mississippi":          "MS",
	"Missouri":             "MO",
	"Montana":              "MT",
	"Nebraska":             "NE",
	"Nevada":               "NV",
	"New Hampshire":        "NH",
	"New Jersey":           "NJ",
	"New Mexico":           "NM",
	"New York":             "NY",
	"North Carolina":       "NC",
	"North Dakota":         "ND",
	"Ohio":                 "OH",
	"Oklahoma":             "OK",
	"Oregon":               "OR",
	"Pennsylvania":         "PA",
	"Rhode Island":         "RI",
	"South Carolina":       "SC",
	"South Dakota":         "SD",
	"Tennessee":            "TN",
	"Texas":                "TX",
	"Utah":                 "UT",
	"Vermont":              "VT",
	"Virginia":             "VA",
	"Washington":           "WA",
	"West Virginia":        "WV",
	"Wisconsin":            "WI",
	"Wyoming":              "WY",
}

// FIPSIndex maps two-digit FIPS state codes, as used for the feature ids of
// the boundary document, to the row index of that state in the exports.
// FIPS skips 03, 07, 14, 43 and 52, so the two sequences drift apart while
// keeping the same order.
var FIPSIndex = map[string]int{
	"01": 0,
	"02": 1,
	"04": 2,
	"05": 3,
	"06": 4,
	"08": 5,
	"09": 6,
	"10": 7,
	"11": 8,
	"12": 9,
	"13": 10,
	"15": 11,
	"16": 12,
	"17": 13,
	"18": 14,
	"19": 15,
	"20": 16,
	"21": 17,
	"22": 18,
	"23": 19,
	"24": 20,
	"25": 21,
	"26": 22,
	"27": 23,
	"28": 24,
	"29": 25,
	"30": 26,
	"31": 27,
	"32": 28,
	"33": 29,
	"34": 30,
	"35": 31,
	"36": 32,
	"37": 33,
	"38": 34,
	"39": 35,
	"40": 36,
	"41": 37,
	"42": 38,
	"44": 39,
	"45": 40,
	"46": 41,
	"47": 42,
	"48": 43,
	"49": 44,
	"50": 45,
	"51": 46,
	"53": 47,
	"54": 48,
	"55": 49,
	"56": 50,
}

// FIPSAbbreviations maps two-digit FIPS state codes to USPS codes. It is
// used to confirm that the record found through [FIPSIndex] is the state the
// code stands for.
var FIPSAbbreviations = map[string]string{
	"01": "AL",
	"02": "AK",
	"04": "AZ",
	"05": "AR",
	"06": "CA",
	"08": "CO",
	"09": "CT",
	"10": "DE",
	"11": "DC",
	"12": "FL",
	"13": "GA",
	"15": "HI",
	"16": "ID",
	"17": "IL",
	"18": "IN",
	"19": "IA",
	"20": "KS",
	"21": "KY",
	"22": "LA",
	"23": "ME",
	"24": "MD",
	"25": "MA",
	"26": "MI",
	"27": "MN",
	"28": "MS",
	"29": "MO",
	"30": "MT",
	"31": "NE",
	"32": "NV",
	"33": "NH",
	"34": "NJ",
	"35": "NM",
	"36": "NY",
	"37": "NC",
	"38": "ND",
	"39": "OH",
	"40": "OK",
	"41": "OR",
	"42": "PA",
	"44": "RI",
	"45": "SC",
	"46": "SD",
	"47": "TN",
	"48": "TX",
	"49": "UT",
	"50": "VT",
	"51": "VA",
	"53": "WA",
	"54": "WV",
	"55": "WI",
	"56": "WY",
}

// Abbreviation returns the USPS code for a full state name.
func Abbreviation(name string) (string, bool) {
	abbr, ok := StateAbbreviations[strings.TrimSpace(name)]
	return abbr, ok
}

// IndexForFIPS returns the export row index for a FIPS state code. Codes
// may be unpadded ("8") since some boundary files store them as numbers.
func IndexForFIPS(code string) (int, bool) {
	code = strings.TrimSpace(code)
	if n, err := strconv.Atoi(code); err == nil && n >= 0 && n < 100 {
		code = padFIPS(n)
	}
	idx, ok := FIPSIndex[code]
	return idx, ok
}

// AbbreviationForFIPS returns the USPS code for a FIPS state code. Unpadded
// codes are accepted as in [IndexForFIPS].
func AbbreviationForFIPS(code string) (string, bool) {
	code = strings.TrimSpace(code)
	if n, err := strconv.Atoi(code); err == nil && n >= 0 && n < 100 {
		code = padFIPS(n)
	}
	abbr, ok := FIPSAbbreviations[code]
	return abbr, ok
}

func padFIPS(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
