// Package zipcode models ZIP code records from the US federal ZIP code dataset.
//
// # Data Source
//
// The federal dataset is a CSV file with one ZIP code per row, published as
// free-zipcode-database-Primary.csv. Every textual field is wrapped in double
// quotes; the coordinate fields are not:
//
//	"RecordNumber","Zipcode","ZipCodeType","City","State","LocationType","Lat","Long","Xaxis","Yaxis","Zaxis",...
//	"1","00704","STANDARD","PARC PARQUE","PR","NOT ACCEPTABLE",17.96,-66.22,0.38,-0.87,0.3,...
//
// A simplified export of the same data drops the record number, the location
// type, the axis columns and all quoting:
//
//	00601,STANDARD,ADJUNTAS,PR,18.180000,-66.750000
//
// The simplified form is also what [Format] produces, so exported files can be
// read back with [Simplified].
//
// # Conventions
//
// ZIP codes:
//
//	Always five ASCII digits. Spreadsheet round-trips strip leading zeros,
//	so "601" is restored to "00601". Longer tokens are kept as given.
//
// ZIP code types:
//
//	STANDARD, PO_BOX, UNIQUE and MILITARY, matched exactly. Anything else
//	(including lower case) becomes INVALID rather than failing the record.
//
// Coordinates:
//
//	Single precision degrees. Empty or malformed values fail the record with
//	[ErrInvalidNumeric] unless the dialect is lenient, in which case they
//	become zero.
package zipcode
