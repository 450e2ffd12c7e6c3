package reconcile

// Ordered alias tables for each logical field. Earlier entries win; a record
// may carry any mix of snake_case import names and the original vendor
// column names, so both spellings are listed for every field.

var (
	// ValuationAliases covers AVM and tax-assessor valuation sources in
	// preference order: estimated value, market value, assessed value.
	ValuationAliases = []string{
		"estimated_value",
		"EstimatedValue",
		"tax_market_value_total",
		"TaxMarketValueTotal",
		"tax_assessed_value_total",
		"TaxAssessedValueTotal",
		"valuation",
	}

	MarketValueAliases = []string{
		"tax_market_value_total",
		"TaxMarketValueTotal",
	}

	AssessedValueAliases = []string{
		"tax_assessed_value_total",
		"TaxAssessedValueTotal",
	}

	Owner1Aliases = []string{
		"party_owner1_name_full",
		"PartyOwner1NameFull",
		"OwnerName",
		"OwnerName1",
	}

	Owner2Aliases = []string{
		"party_owner2_name_full",
		"PartyOwner2NameFull",
		"OwnerName2",
	}

	MailAddressAliases = []string{
		"contact_owner_mail_address_full",
		"ContactOwnerMailAddressFull",
		"owner_address",
	}

	SiteAddressAliases = []string{
		"property_address_full",
		"PropertyAddressFull",
		"site_address",
	}

	CityAliases = []string{
		"property_address_city",
		"PropertyAddressCity",
	}

	OwnerOccupiedAliases = []string{
		"status_owner_occupied_flag",
		"StatusOwnerOccupiedFlag",
	}

	YearBuiltAliases = []string{
		"YearBuilt",
		"year_built",
		"YEAR_BUILT",
		"built_year",
	}

	LatitudeAliases = []string{
		"property_latitude",
		"PropertyLatitude",
	}

	LongitudeAliases = []string{
		"property_longitude",
		"PropertyLongitude",
	}

	FloodZoneAliases = []string{
		"flood_zone",
		"FloodZone",
		"fema_zone",
		"FEMAZone",
		"fema_floodplain",
	}

	LoanMaturityAliases = []string{
		"Mortgage1TermDate",
		"mortgage1_term_date",
		"loan_maturity",
	}

	LoanStartAliases = []string{
		"InstrumentDate",
		"instrument_date",
		"loan_date",
		"RecordingDate",
		"recording_date",
	}

	LoanTermAliases = []string{
		"Mortgage1Term",
		"mortgage1_term",
		"loan_term_years",
	}

	LastSaleDateAliases = []string{
		"assessor_last_sale_date",
		"AssessorLastSaleDate",
	}

	LastSaleAmountAliases = []string{
		"assessor_last_sale_amount",
		"AssessorLastSaleAmount",
	}

	LotSFAliases = []string{
		"area_lot_sf",
		"AreaLotSF",
	}
)
