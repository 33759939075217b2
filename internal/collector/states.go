package collector

import (
	"strings"

	"github.com/pkg/errors"
)

// ColoradoConfig reads the ECMC production pages. The URL is built
// from the county and sequence components of the API number; records
// are public.
var ColoradoConfig = Config{
	ProdURLTemplate: "https://ecmc.state.co.us/cogisdb/Facility/Production?api_county_code=%s&api_seq_num=%s",
	DateCol:         "First of Month",
	OilProdCol:      "Oil Produced",
	GasProdCol:      "Gas Produced",
	DaysProducedCol: "Days Produced",
	StatusCol:       "Well Status",
	ShutInCodes:     []string{"SI"},
	URLComponents:   countyAndSequence,
}

// NorthDakotaConfig reads the DMR production feed, which requires a
// subscription; credentials come from configuration. The DMR keys
// wells by the county-sequence pair as well.
var NorthDakotaConfig = Config{
	ProdURLTemplate: "https://www.dmr.nd.gov/oilgas/feeservices/getwellprod.asp?api_county_code=%s&api_seq_num=%s",
	DateCol:         "Date",
	OilProdCol:      "BBLS Oil",
	GasProdCol:      "MCF Prod",
	DaysProducedCol: "Days",
	URLComponents:   countyAndSequence,
}

// StateConfigs registers each supported state's scraper config by API
// state code.
var StateConfigs = map[string]Config{
	"05": ColoradoConfig,    // Colorado
	"33": NorthDakotaConfig, // North Dakota
}

// countyAndSequence pulls the 2nd and 3rd components out of an API
// number like 05-123-45678.
func countyAndSequence(apiNum string) ([]interface{}, error) {
	parts := strings.Split(apiNum, "-")
	if len(parts) < 3 {
		return nil, errors.Errorf("API number %q has no county and sequence components", apiNum)
	}
	return []interface{}{parts[1], parts[2]}, nil
}
