package dashboard

const (
	dashboardTitle    = "Freelance Marketplace Dynamics Dashboard"
	dashboardSubtitle = "Analysis of Demand, Supply, and Search Friction (Search-Model View)"
	dashboardFooter   = "Portfolio project built on Search-Model theory."

	labelTotalJobs       = "Total Job Postings (Demand)"
	labelAvgPrice        = "Average Project Price (USD)"
	labelUniqueCountries = "Unique Client Countries"
)

var insights = []Insight{
	{
		Chart:   ChartScatter,
		Heading: "Search-Model Interpretation",
		Body: "This chart is the core of the Search-Model analysis. It shows the bargaining power and friction in the market.\n\n" +
			"Niche/High-Value (Low Friction, High Pay): categories like Web & Software Dev show high average pay but low competition. " +
			"Here the supply side (freelancers) has high bargaining power and clients face less friction in finding quality services.\n\n" +
			"Oversupplied/Low-Value (High Friction, Low Pay): categories like Writing & Translation have intense competition " +
			"(high Friction Index) and lower pay. This indicates an oversaturated market and high friction for freelancers trying to secure a job.",
	},
	{
		Chart:   ChartBar,
		Heading: "Interpretation (Demand Side)",
		Body: "The Demand Agents (clients) are heavily concentrated in a few regions (India and the US dominate). " +
			"This concentration means regional demand patterns strongly influence the platform's overall market equilibrium and pricing.",
	},
	{
		Chart:   ChartPie,
		Heading: "Interpretation (Trade Surplus)",
		Body: "The market overwhelmingly prefers Fixed Price jobs (~80%). " +
			"This structure minimizes client risk (Demand Side), but the smaller Hourly Rate segment " +
			"suggests opportunities for long-term engagements where the search friction of defining scope is too high for a fixed bid.",
	},
}

// Insights returns the static interpretive text, one block per chart.
func Insights() []Insight {
	out := make([]Insight, len(insights))
	copy(out, insights)
	return out
}
