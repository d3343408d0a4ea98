package reader

import (
	"time"

	"github.com/samber/lo"

	"github.com/lehigh-university-libraries/zugferd/collection"
	"github.com/lehigh-university-libraries/zugferd/graph"
)

// Summary returns the main document data as a tree of plain values
// (string, float64, bool, []any, map[string]any), suitable for
// structpb.NewStruct and JSON encoding.
//
// Summary walks groups directly and leaves the session's cursors untouched.
func (s *Session) Summary() map[string]any {
	out := map[string]any{
		"profile":     s.profile.Name(),
		"id":          s.DocumentID(),
		"name":        s.DocumentName(),
		"type_code":   s.TypeCode(),
		"issue_date":  date(s.IssueDate()),
		"test":        s.TestIndicator(),
		"currency":    s.Currency(),
		"notes":       lo.ToAnySlice(s.Notes()),
		"seller":      partySummary(s.Seller()),
		"buyer":       partySummary(s.Buyer()),
		"taxes":       rows(s.Taxes()),
		"payment":     rows(s.PaymentMeans()),
		"totals":      totalsSummary(s.Totals()),
		"positions":   s.positionsSummary(),
		"attachments": lo.ToAnySlice(s.attachmentNames(s.node(pathReferences))),
	}
	if ref := s.BuyerReference(); ref != "" {
		out["buyer_reference"] = ref
	}
	if d := s.DeliveryDate(); !d.IsZero() {
		out["delivery_date"] = date(d)
	}
	return out
}

func (s *Session) positionsSummary() []any {
	g, ok := s.node(pathPositions).(graph.Group)
	if !ok {
		return []any{}
	}
	return lo.Map(g.Records(), func(r *graph.Record, _ int) any {
		return map[string]any{
			"line_id":     graph.Resolve(r, "AssociatedDocumentLineDocument.LineID.value", ""),
			"product":     graph.Resolve(r, "SpecifiedTradeProduct.Name.value", ""),
			"quantity":    graph.Resolve(r, "SpecifiedSupplyChainTradeDelivery.BilledQuantity.value", 0.0),
			"unit":        graph.Unit(r, "SpecifiedSupplyChainTradeDelivery.BilledQuantity"),
			"net_price":   graph.Resolve(r, "SpecifiedSupplyChainTradeAgreement.NetPriceProductTradePrice.ChargeAmount.value", 0.0),
			"line_total":  graph.Resolve(r, "SpecifiedSupplyChainTradeSettlement.SpecifiedTradeSettlementMonetarySummation.LineTotalAmount.value", 0.0),
			"notes":       lo.ToAnySlice(collection.Flat(graph.Lookup(r, graph.ParsePath(pathPositionNotes)), collection.Field("", "Content.value", ""))),
			"attachments": lo.ToAnySlice(s.attachmentNames(graph.Lookup(r, graph.ParsePath(pathPositionReferences)))),
		}
	})
}

func (s *Session) attachmentNames(refs graph.Node) []string {
	names := collection.Flat(refs, collection.Field("", "AttachmentBinaryObject.filename", ""))
	return lo.Compact(names)
}

func partySummary(p Party) map[string]any {
	return map[string]any{
		"name":              p.Name,
		"city":              p.City,
		"country":           p.Country,
		"tax_registrations": lo.MapValues(p.TaxRegistrations, func(v string, _ string) any { return v }),
	}
}

func totalsSummary(t Totals) map[string]any {
	return map[string]any{
		"line_total":  t.LineTotal,
		"tax_basis":   t.TaxBasisTotal,
		"tax_total":   t.TaxTotal,
		"grand_total": t.GrandTotal,
		"due_payable": t.DuePayable,
	}
}

func rows(in []map[string]string) []any {
	return lo.Map(in, func(row map[string]string, _ int) any {
		return lo.MapValues(row, func(v string, _ string) any { return v })
	})
}

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}
