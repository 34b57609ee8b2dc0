/*
format.go - Final report shaping

PURPOSE:
  Maps each frozen accumulator to the public SellerReport: joined name,
  monetary fields rounded half-away-from-zero to two decimals, sales count,
  the best-sellers list, and the bonus. Output order is the profit-descending
  order established by the ranking stage.
*/
package report

// formatReport freezes one accumulator into its public shape.
func formatReport(st *SellerStats) SellerReport {
	return SellerReport{
		SellerID:    st.SellerID,
		Name:        st.FirstName + " " + st.LastName,
		Revenue:     st.Revenue.Round(2),
		Profit:      st.Profit.Round(2),
		SalesCount:  st.TotalSales,
		TopProducts: st.TopProducts,
		Bonus:       st.Bonus.Round(2),
	}
}
