package reader

import (
	"time"

	"github.com/lehigh-university-libraries/zugferd/collection"
	"github.com/lehigh-university-libraries/zugferd/graph"
)

const (
	pathTransaction  = "SpecifiedSupplyChainTradeTransaction"
	pathAgreement    = pathTransaction + ".ApplicableSupplyChainTradeAgreement"
	pathDelivery     = pathTransaction + ".ApplicableSupplyChainTradeDelivery"
	pathSettlement   = pathTransaction + ".ApplicableSupplyChainTradeSettlement"
	pathSeller       = pathAgreement + ".SellerTradeParty"
	pathBuyer        = pathAgreement + ".BuyerTradeParty"
	pathReferences   = pathAgreement + ".AdditionalReferencedDocument"
	pathSummation    = pathSettlement + ".SpecifiedTradeSettlementMonetarySummation"
	pathTaxes        = pathSettlement + ".ApplicableTradeTax"
	pathPaymentMeans = pathSettlement + ".SpecifiedTradeSettlementPaymentMeans"
	pathPaymentTerms = pathSettlement + ".SpecifiedTradePaymentTerms"
	pathAllowances   = pathSettlement + ".SpecifiedTradeAllowanceCharge"
)

// Cursor keys of trade-level groups.
const (
	KeyReferences   = "references"
	KeyPaymentTerms = "payment_terms"
)

// Party is a seller or buyer.
type Party struct {
	ID             string
	GlobalID       string
	GlobalIDScheme string
	Name           string
	ContactName    string
	Telephone      string
	Email          string
	Postcode       string
	LineOne        string
	LineTwo        string
	City           string
	Country        string

	// TaxRegistrations maps scheme (VA, FC) to registration number.
	TaxRegistrations map[string]string
}

func (s *Session) party(path string) Party {
	n := s.node(path)
	return Party{
		ID:               graph.Resolve(n, "ID.value", ""),
		GlobalID:         graph.Resolve(n, "GlobalID.value", ""),
		GlobalIDScheme:   graph.Unit(n, "GlobalID"),
		Name:             graph.Resolve(n, "Name.value", ""),
		ContactName:      graph.Resolve(n, "DefinedTradeContact.PersonName.value", ""),
		Telephone:        graph.Resolve(n, "DefinedTradeContact.TelephoneNumber.value", ""),
		Email:            graph.Resolve(n, "DefinedTradeContact.EmailAddress.value", ""),
		Postcode:         graph.Resolve(n, "PostalTradeAddress.PostcodeCode.value", ""),
		LineOne:          graph.Resolve(n, "PostalTradeAddress.LineOne.value", ""),
		LineTwo:          graph.Resolve(n, "PostalTradeAddress.LineTwo.value", ""),
		City:             graph.Resolve(n, "PostalTradeAddress.CityName.value", ""),
		Country:          graph.Resolve(n, "PostalTradeAddress.CountryID.value", ""),
		TaxRegistrations: taxRegistrations(n),
	}
}

func taxRegistrations(party graph.Node) map[string]string {
	group := graph.Lookup(party, graph.ParsePath("SpecifiedTaxRegistration"))
	return collection.Associative(group, "schemeID.value", "ID.value")
}

// Seller returns the seller party.
func (s *Session) Seller() Party {
	return s.party(pathSeller)
}

// Buyer returns the buyer party.
func (s *Session) Buyer() Party {
	return s.party(pathBuyer)
}

// SellerName returns the seller's name.
func (s *Session) SellerName() string {
	return graph.Resolve(s.root, join(pathSeller, "Name.value"), "")
}

// BuyerName returns the buyer's name.
func (s *Session) BuyerName() string {
	return graph.Resolve(s.root, join(pathBuyer, "Name.value"), "")
}

// SellerTaxRegistrations maps tax scheme to the seller's registration.
func (s *Session) SellerTaxRegistrations() map[string]string {
	return taxRegistrations(s.node(pathSeller))
}

// BuyerTaxRegistrations maps tax scheme to the buyer's registration.
func (s *Session) BuyerTaxRegistrations() map[string]string {
	return taxRegistrations(s.node(pathBuyer))
}

// BuyerReference returns the buyer's reference (Comfort and Extended).
func (s *Session) BuyerReference() string {
	return graph.Resolve(s.root, join(pathAgreement, "BuyerReference.value"), "")
}

// BuyerOrderID returns the referenced purchase order number.
func (s *Session) BuyerOrderID() string {
	return graph.Resolve(s.root, join(pathAgreement, "BuyerOrderReferencedDocument.ID.value"), "")
}

// ContractID returns the referenced contract number.
func (s *Session) ContractID() string {
	return graph.Resolve(s.root, join(pathAgreement, "ContractReferencedDocument.ID.value"), "")
}

// DeliveryDate returns the actual delivery date.
func (s *Session) DeliveryDate() time.Time {
	return graph.Resolve(s.root, join(pathDelivery, "ActualDeliverySupplyChainEvent.OccurrenceDateTime"), time.Time{})
}

// =============================================================================
// SETTLEMENT
// =============================================================================

// Currency returns the invoice currency code.
func (s *Session) Currency() string {
	return graph.Resolve(s.root, join(pathSettlement, "InvoiceCurrencyCode.value"), "")
}

// PaymentReference returns the payment reference.
func (s *Session) PaymentReference() string {
	return graph.Resolve(s.root, join(pathSettlement, "PaymentReference.value"), "")
}

// Totals are the document-level monetary summation amounts.
type Totals struct {
	LineTotal      float64
	ChargeTotal    float64
	AllowanceTotal float64
	TaxBasisTotal  float64
	TaxTotal       float64
	GrandTotal     float64
	TotalPrepaid   float64
	DuePayable     float64
}

// Totals returns the monetary summation. Amounts a profile does not carry
// are zero.
func (s *Session) Totals() Totals {
	n := s.node(pathSummation)
	return Totals{
		LineTotal:      graph.Resolve(n, "LineTotalAmount.value", 0.0),
		ChargeTotal:    graph.Resolve(n, "ChargeTotalAmount.value", 0.0),
		AllowanceTotal: graph.Resolve(n, "AllowanceTotalAmount.value", 0.0),
		TaxBasisTotal:  graph.Resolve(n, "TaxBasisTotalAmount.value", 0.0),
		TaxTotal:       graph.Resolve(n, "TaxTotalAmount.value", 0.0),
		GrandTotal:     graph.Resolve(n, "GrandTotalAmount.value", 0.0),
		TotalPrepaid:   graph.Resolve(n, "TotalPrepaidAmount.value", 0.0),
		DuePayable:     graph.Resolve(n, "DuePayableAmount.value", 0.0),
	}
}

// GrandTotal returns the invoice grand total.
func (s *Session) GrandTotal() float64 {
	return graph.Resolve(s.root, join(pathSummation, "GrandTotalAmount.value"), 0.0)
}

// Taxes returns one row per applicable trade tax.
func (s *Session) Taxes() []map[string]string {
	return collection.Table(s.node(pathTaxes),
		collection.Field("type", "TypeCode.value", ""),
		collection.Field("category", "CategoryCode.value", ""),
		collection.Field("percent", "ApplicablePercent.value", "0"),
		collection.Field("basis", "BasisAmount.value", "0.00"),
		collection.Field("amount", "CalculatedAmount.value", "0.00"),
	)
}

// PaymentMeans returns one row per payment means.
func (s *Session) PaymentMeans() []map[string]string {
	return collection.Table(s.node(pathPaymentMeans),
		collection.Field("type", "TypeCode.value", ""),
		collection.Field("information", "Information.value", ""),
		collection.Field("iban", "PayeePartyCreditorFinancialAccount.IBANID.value", ""),
		collection.Field("bic", "PayeeSpecifiedCreditorFinancialInstitution.BICID.value", ""),
	)
}

// AllowanceCharges returns document-level allowances and charges
// (Comfort and Extended).
func (s *Session) AllowanceCharges() []map[string]string {
	return collection.Table(s.node(pathAllowances),
		collection.Field("charge", "ChargeIndicator.value", "false"),
		collection.Field("amount", "ActualAmount.value", "0.00"),
		collection.Field("reason", "Reason.value", ""),
	)
}

// FirstPaymentTerms moves to the first payment terms entry.
func (s *Session) FirstPaymentTerms() bool {
	return s.cursors.First(KeyPaymentTerms, s.length(pathPaymentTerms))
}

// NextPaymentTerms moves to the next payment terms entry.
func (s *Session) NextPaymentTerms() bool {
	return s.cursors.Next(KeyPaymentTerms, s.length(pathPaymentTerms))
}

// PaymentTermsDescription returns the description of the current terms.
func (s *Session) PaymentTermsDescription() string {
	return graph.Resolve(s.item(KeyPaymentTerms, pathPaymentTerms), "Description.value", "")
}

// PaymentTermsDueDate returns the due date of the current terms.
func (s *Session) PaymentTermsDueDate() time.Time {
	return graph.Resolve(s.item(KeyPaymentTerms, pathPaymentTerms), "DueDateDateTime", time.Time{})
}

// =============================================================================
// REFERENCED DOCUMENTS
// =============================================================================

// FirstReferencedDocument moves to the first additional referenced
// document (Extended).
func (s *Session) FirstReferencedDocument() bool {
	return s.cursors.First(KeyReferences, s.length(pathReferences))
}

// NextReferencedDocument moves to the next additional referenced document.
func (s *Session) NextReferencedDocument() bool {
	return s.cursors.Next(KeyReferences, s.length(pathReferences))
}

// ReferencedDocumentID returns the ID of the current referenced document.
func (s *Session) ReferencedDocumentID() string {
	return graph.Resolve(s.item(KeyReferences, pathReferences), "ID.value", "")
}

// ReferencedDocumentTypeCode returns the type code of the current
// referenced document.
func (s *Session) ReferencedDocumentTypeCode() string {
	return graph.Resolve(s.item(KeyReferences, pathReferences), "TypeCode.value", "")
}

// ReferencedDocumentURI returns the URI of the current referenced document.
func (s *Session) ReferencedDocumentURI() string {
	return graph.Resolve(s.item(KeyReferences, pathReferences), "URIID.value", "")
}

// ReferencedDocumentFilename returns the attachment filename of the
// current referenced document.
func (s *Session) ReferencedDocumentFilename() string {
	return graph.Resolve(s.item(KeyReferences, pathReferences), "AttachmentBinaryObject.filename", "")
}

// ExtractReferencedDocument writes the attachment of the current
// referenced document into dir.
func (s *Session) ExtractReferencedDocument(dir string) (string, bool) {
	return s.extractor.Extract(s.item(KeyReferences, pathReferences), dir)
}
