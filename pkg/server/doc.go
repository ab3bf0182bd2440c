// Package server serves the batch validation API.
//
// POST /api/upload takes a multipart form with a "file" part (.xlsx, .xlsm
// or .xls) and an "invoicingMonth" field such as "2024-01" or "Jan 2024".
//
// A readable batch answers 200 with
//
//	{
//	  "InvoicingMonth": "2024-01",
//	  "currencyRates": {"USD": 1, "EUR": 0.9},
//	  "invoicesData": [{"Customer": "Acme", "Cust No'": "1042", ..., "validationErrors": []}]
//	}
//
// and a batch with a broken layout or another month answers 200 with
// {"error": "..."}. A missing file or month is a 400 and anything that fails
// while reading the upload is a 500, both with an {"error": "..."} body.
//
// Compatibility note for clients of the earlier service: text fields
// (Customer, Cust No', Project Type, Item Price Currency, Invoice Currency,
// Status) are always JSON strings. A number typed into one of them comes
// back as its shortest decimal text, so Cust No' 1042 is "1042" rather than
// 1042, and an empty text cell comes back as "" rather than null. Numeric
// fields and columns outside the fixed set keep their cell type, with empty
// extras still rendered as null.
package server
