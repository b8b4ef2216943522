package fieldmap

// CompanyFields maps Yahoo quote summary fields onto the companies table.
// Fields that are already single lowercase words (sector, industry, city, ...)
// need no entry. Longer names come before names they contain.
var CompanyFields = New(
	Pair{"longBusinessSummary", "long_business_summary"},
	Pair{"shortName", "short_name"},
	Pair{"longName", "long_name"},
	Pair{"displayName", "display_name"},
	Pair{"fullTimeEmployees", "full_time_employees"},
	Pair{"quoteType", "quote_type"},
	Pair{"fullExchangeName", "full_exchange_name"},
	Pair{"industryKey", "industry_key"},
	Pair{"sectorKey", "sector_key"},
	Pair{"irWebsite", "ir_website"},
	Pair{"address1", "address"},
	Pair{"marketCap", "market_cap"},
	Pair{"enterpriseValue", "enterprise_value"},
	Pair{"enterpriseToRevenue", "enterprise_to_revenue"},
	Pair{"enterpriseToEbitda", "enterprise_to_ebitda"},
	Pair{"currentPrice", "current_price"},
	Pair{"previousClose", "previous_close"},
	Pair{"regularMarketPrice", "regular_market_price"},
	Pair{"regularMarketVolume", "regular_market_volume"},
	Pair{"dayLow", "day_low"},
	Pair{"dayHigh", "day_high"},
	Pair{"fiftyTwoWeekLow", "fifty_two_week_low"},
	Pair{"fiftyTwoWeekHigh", "fifty_two_week_high"},
	Pair{"fiftyDayAverage", "fifty_day_average"},
	Pair{"twoHundredDayAverage", "two_hundred_day_average"},
	Pair{"averageVolume10days", "average_volume_10_days"},
	Pair{"averageVolume", "average_volume"},
	Pair{"trailingPegRatio", "trailing_peg_ratio"},
	Pair{"trailingPE", "trailing_pe"},
	Pair{"forwardPE", "forward_pe"},
	Pair{"trailingEps", "trailing_eps"},
	Pair{"forwardEps", "forward_eps"},
	Pair{"priceToSalesTrailing12Months", "price_to_sales_trailing_12_months"},
	Pair{"priceToBook", "price_to_book"},
	Pair{"bookValue", "book_value"},
	Pair{"dividendRate", "dividend_rate"},
	Pair{"dividendYield", "dividend_yield"},
	Pair{"payoutRatio", "payout_ratio"},
	Pair{"totalRevenue", "total_revenue"},
	Pair{"revenueGrowth", "revenue_growth"},
	Pair{"earningsGrowth", "earnings_growth"},
	Pair{"grossMargins", "gross_margins"},
	Pair{"operatingMargins", "operating_margins"},
	Pair{"profitMargins", "profit_margins"},
	Pair{"returnOnEquity", "return_on_equity"},
	Pair{"returnOnAssets", "return_on_assets"},
	Pair{"freeCashflow", "free_cashflow"},
	Pair{"operatingCashflow", "operating_cashflow"},
	Pair{"totalCashPerShare", "total_cash_per_share"},
	Pair{"totalCash", "total_cash"},
	Pair{"totalDebt", "total_debt"},
	Pair{"debtToEquity", "debt_to_equity"},
	Pair{"sharesOutstanding", "shares_outstanding"},
	Pair{"floatShares", "float_shares"},
	Pair{"heldPercentInsiders", "held_percent_insiders"},
	Pair{"heldPercentInstitutions", "held_percent_institutions"},
	Pair{"recommendationKey", "recommendation_key"},
	Pair{"targetMeanPrice", "target_mean_price"},
)

// OptionFields maps Yahoo option chain fields onto the put/call option tables.
var OptionFields = New(
	Pair{"contractSymbol", "contract_symbol"},
	Pair{"contractSize", "contract_size"},
	Pair{"strike", "strike_price"},
	Pair{"lastPrice", "last_price"},
	Pair{"percentChange", "percent_change"},
	Pair{"openInterest", "open_interest"},
	Pair{"lastTradeDate", "last_trade_date"},
	Pair{"impliedVolatility", "implied_volatility"},
	Pair{"inTheMoney", "in_the_money"},
)
