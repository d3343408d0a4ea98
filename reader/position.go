package reader

import (
	"github.com/lehigh-university-libraries/zugferd/collection"
	"github.com/lehigh-university-libraries/zugferd/cursor"
	"github.com/lehigh-university-libraries/zugferd/graph"
)

const (
	pathPositions = pathTransaction + ".IncludedSupplyChainTradeLineItem"

	// Relative to a line item.
	pathPositionNotes           = "AssociatedDocumentLineDocument.IncludedNote"
	pathPositionCharacteristics = "SpecifiedTradeProduct.ApplicableProductCharacteristic"
	pathPositionClassifications = "SpecifiedTradeProduct.DesignatedProductClassification"
	pathPositionInstances       = "SpecifiedTradeProduct.IndividualTradeProductInstance"
	pathPositionReferences      = "SpecifiedSupplyChainTradeAgreement.AdditionalReferencedDocument"
	pathPositionTaxes           = "SpecifiedSupplyChainTradeSettlement.ApplicableTradeTax"
)

// Cursor keys of line items and the groups scoped under them.
const (
	KeyPosition = "position"
)

var (
	KeyPositionNotes           = cursor.Child(KeyPosition, "notes")
	KeyPositionCharacteristics = cursor.Child(KeyPosition, "characteristics")
	KeyPositionClassifications = cursor.Child(KeyPosition, "classifications")
	KeyPositionInstances       = cursor.Child(KeyPosition, "instances")
	KeyPositionReferences      = cursor.Child(KeyPosition, "references")
)

// FirstPosition moves to the first line item. Every position-scoped cursor
// starts over.
func (s *Session) FirstPosition() bool {
	return s.cursors.First(KeyPosition, s.length(pathPositions))
}

// NextPosition moves to the next line item.
func (s *Session) NextPosition() bool {
	return s.cursors.Next(KeyPosition, s.length(pathPositions))
}

// PositionCount returns the number of line items.
func (s *Session) PositionCount() int {
	return graph.Len(s.node(pathPositions))
}

func (s *Session) position() graph.Node {
	return s.item(KeyPosition, pathPositions)
}

// positionGroup resolves a group below the current line item. It is
// re-evaluated on every call so child cursors always follow the parent.
func (s *Session) positionGroup(path string) graph.Node {
	return graph.Lookup(s.position(), graph.ParsePath(path))
}

func (s *Session) positionLength(path string) cursor.LengthFunc {
	return func() int {
		return graph.Len(s.positionGroup(path))
	}
}

func (s *Session) positionItem(key, path string) graph.Node {
	return graph.Index(s.positionGroup(path), s.cursors.Current(key))
}

// PositionLineID returns the line number of the current line item.
func (s *Session) PositionLineID() string {
	return graph.Resolve(s.position(), "AssociatedDocumentLineDocument.LineID.value", "")
}

// PositionProductName returns the product name of the current line item.
func (s *Session) PositionProductName() string {
	return graph.Resolve(s.position(), "SpecifiedTradeProduct.Name.value", "")
}

// PositionProductDescription returns the product description.
func (s *Session) PositionProductDescription() string {
	return graph.Resolve(s.position(), "SpecifiedTradeProduct.Description.value", "")
}

// PositionSellerAssignedID returns the seller's article number.
func (s *Session) PositionSellerAssignedID() string {
	return graph.Resolve(s.position(), "SpecifiedTradeProduct.SellerAssignedID.value", "")
}

// PositionBuyerAssignedID returns the buyer's article number.
func (s *Session) PositionBuyerAssignedID() string {
	return graph.Resolve(s.position(), "SpecifiedTradeProduct.BuyerAssignedID.value", "")
}

// PositionGlobalID returns the global product ID and its scheme
// (e.g., "0160" for GTIN).
func (s *Session) PositionGlobalID() (id, scheme string) {
	p := s.position()
	return graph.Resolve(p, "SpecifiedTradeProduct.GlobalID.value", ""),
		graph.Unit(p, "SpecifiedTradeProduct.GlobalID")
}

// PositionOriginCountry returns the product's country of origin (Extended).
func (s *Session) PositionOriginCountry() string {
	return graph.Resolve(s.position(), "SpecifiedTradeProduct.OriginCountry.value", "")
}

// PositionQuantity returns the billed quantity and its unit code.
func (s *Session) PositionQuantity() (float64, string) {
	p := s.position()
	return graph.Resolve(p, "SpecifiedSupplyChainTradeDelivery.BilledQuantity.value", 0.0),
		graph.Unit(p, "SpecifiedSupplyChainTradeDelivery.BilledQuantity")
}

// PositionGrossPrice returns the gross unit price.
func (s *Session) PositionGrossPrice() float64 {
	return graph.Resolve(s.position(), "SpecifiedSupplyChainTradeAgreement.GrossPriceProductTradePrice.ChargeAmount.value", 0.0)
}

// PositionNetPrice returns the net unit price.
func (s *Session) PositionNetPrice() float64 {
	return graph.Resolve(s.position(), "SpecifiedSupplyChainTradeAgreement.NetPriceProductTradePrice.ChargeAmount.value", 0.0)
}

// PositionLineTotal returns the line total amount.
func (s *Session) PositionLineTotal() float64 {
	return graph.Resolve(s.position(), "SpecifiedSupplyChainTradeSettlement.SpecifiedTradeSettlementMonetarySummation.LineTotalAmount.value", 0.0)
}

// PositionTaxes returns the taxes applied to the current line item.
func (s *Session) PositionTaxes() []map[string]string {
	return collection.Table(s.positionGroup(pathPositionTaxes),
		collection.Field("type", "TypeCode.value", ""),
		collection.Field("category", "CategoryCode.value", ""),
		collection.Field("percent", "ApplicablePercent.value", "0"),
	)
}

// PositionNotes returns the content of every note of the current line item.
func (s *Session) PositionNotes() []string {
	return collection.Flat(s.positionGroup(pathPositionNotes), collection.Field("content", "Content.value", ""))
}

// =============================================================================
// POSITION NOTES
// =============================================================================

// FirstPositionNote moves to the first note of the current line item.
func (s *Session) FirstPositionNote() bool {
	return s.cursors.First(KeyPositionNotes, s.positionLength(pathPositionNotes))
}

// NextPositionNote moves to the next note of the current line item.
func (s *Session) NextPositionNote() bool {
	return s.cursors.Next(KeyPositionNotes, s.positionLength(pathPositionNotes))
}

// PositionNoteContent returns the content of the current line note.
func (s *Session) PositionNoteContent() string {
	return graph.Resolve(s.positionItem(KeyPositionNotes, pathPositionNotes), "Content.value", "")
}

// =============================================================================
// PRODUCT CHARACTERISTICS (Extended)
// =============================================================================

// FirstPositionCharacteristic moves to the first product characteristic.
func (s *Session) FirstPositionCharacteristic() bool {
	return s.cursors.First(KeyPositionCharacteristics, s.positionLength(pathPositionCharacteristics))
}

// NextPositionCharacteristic moves to the next product characteristic.
func (s *Session) NextPositionCharacteristic() bool {
	return s.cursors.Next(KeyPositionCharacteristics, s.positionLength(pathPositionCharacteristics))
}

// PositionCharacteristic returns type code, description and value of the
// current characteristic.
func (s *Session) PositionCharacteristic() (typeCode, description, value string) {
	c := s.positionItem(KeyPositionCharacteristics, pathPositionCharacteristics)
	return graph.Resolve(c, "TypeCode.value", ""),
		graph.Resolve(c, "Description.value", ""),
		graph.Resolve(c, "Value.value", "")
}

// PositionCharacteristicMeasure returns the measured value of the current
// characteristic and its unit code.
func (s *Session) PositionCharacteristicMeasure() (float64, string) {
	c := s.positionItem(KeyPositionCharacteristics, pathPositionCharacteristics)
	return graph.Resolve(c, "ValueMeasure.value", 0.0), graph.Unit(c, "ValueMeasure")
}

// PositionCharacteristics maps characteristic description to value.
func (s *Session) PositionCharacteristics() map[string]string {
	return collection.Associative(s.positionGroup(pathPositionCharacteristics), "Description.value", "Value.value")
}

// =============================================================================
// PRODUCT CLASSIFICATIONS (Extended)
// =============================================================================

// FirstPositionClassification moves to the first product classification.
func (s *Session) FirstPositionClassification() bool {
	return s.cursors.First(KeyPositionClassifications, s.positionLength(pathPositionClassifications))
}

// NextPositionClassification moves to the next product classification.
func (s *Session) NextPositionClassification() bool {
	return s.cursors.Next(KeyPositionClassifications, s.positionLength(pathPositionClassifications))
}

// PositionClassification returns class code, list ID and class name of the
// current classification.
func (s *Session) PositionClassification() (code, listID, name string) {
	c := s.positionItem(KeyPositionClassifications, pathPositionClassifications)
	return graph.Resolve(c, "ClassCode.value", ""),
		graph.Unit(c, "ClassCode"),
		graph.Resolve(c, "ClassName.value", "")
}

// =============================================================================
// PRODUCT INSTANCES (Extended)
// =============================================================================

// FirstPositionInstance moves to the first product instance.
func (s *Session) FirstPositionInstance() bool {
	return s.cursors.First(KeyPositionInstances, s.positionLength(pathPositionInstances))
}

// NextPositionInstance moves to the next product instance.
func (s *Session) NextPositionInstance() bool {
	return s.cursors.Next(KeyPositionInstances, s.positionLength(pathPositionInstances))
}

// PositionInstance returns batch and serial number of the current instance.
func (s *Session) PositionInstance() (batchID, serialID string) {
	c := s.positionItem(KeyPositionInstances, pathPositionInstances)
	return graph.Resolve(c, "BatchID.value", ""),
		graph.Resolve(c, "SupplierAssignedSerialID.value", "")
}

// =============================================================================
// POSITION REFERENCED DOCUMENTS (Extended)
// =============================================================================

// FirstPositionReferencedDocument moves to the first referenced document
// of the current line item.
func (s *Session) FirstPositionReferencedDocument() bool {
	return s.cursors.First(KeyPositionReferences, s.positionLength(pathPositionReferences))
}

// NextPositionReferencedDocument moves to the next referenced document of
// the current line item.
func (s *Session) NextPositionReferencedDocument() bool {
	return s.cursors.Next(KeyPositionReferences, s.positionLength(pathPositionReferences))
}

// PositionReferencedDocumentID returns the ID of the current line
// referenced document.
func (s *Session) PositionReferencedDocumentID() string {
	return graph.Resolve(s.positionItem(KeyPositionReferences, pathPositionReferences), "ID.value", "")
}

// PositionReferencedDocumentFilename returns the attachment filename of the
// current line referenced document.
func (s *Session) PositionReferencedDocumentFilename() string {
	return graph.Resolve(s.positionItem(KeyPositionReferences, pathPositionReferences), "AttachmentBinaryObject.filename", "")
}

// ExtractPositionReferencedDocument writes the attachment of the current
// line referenced document into dir.
func (s *Session) ExtractPositionReferencedDocument(dir string) (string, bool) {
	return s.extractor.Extract(s.positionItem(KeyPositionReferences, pathPositionReferences), dir)
}
