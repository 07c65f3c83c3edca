package costbasis

// Alias de columnas aceptados en las hojas subidas. La comparación no distingue
// mayúsculas; ante varias columnas presentes gana la primera no vacía en este orden.
var (
	SKUColumnAliases      = []string{"SKU", "sku"}
	HPPColumnAliases      = []string{"New HPP", "new_hpp", "hpp"}
	ItemNameColumnAliases = []string{"Item Name", "item_name"}
)

// Encabezados de la plantilla descargable, en orden.
const (
	TemplateColumnSKU           = "SKU"
	TemplateColumnItemName      = "Item Name"
	TemplateColumnCurrentHPP    = "Current HPP"
	TemplateColumnNewHPP        = "New HPP"
	TemplateColumnTotalOrders   = "Total Orders"
	TemplateColumnTotalQuantity = "Total Quantity"
	TemplateColumnTotalRevenue  = "Total Revenue"
)

// TemplateHeader encabezado completo de la plantilla.
var TemplateHeader = []string{
	TemplateColumnSKU,
	TemplateColumnItemName,
	TemplateColumnCurrentHPP,
	TemplateColumnNewHPP,
	TemplateColumnTotalOrders,
	TemplateColumnTotalQuantity,
	TemplateColumnTotalRevenue,
}
