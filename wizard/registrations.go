package wizard

import (
	"github.com/samber/lo"

	"filings/widget"
)

// Registration type keys.
const (
	PrivateLimited = "private-limited"
	GST            = "gst"
	StartupIndia   = "startup-india"
	Proprietorship = "proprietorship"
	FSSAI          = "fssai"
)

var premisesOptions = []string{"Owned", "Rented"}

var catalog = []*Schema{
	{
		Key:   PrivateLimited,
		Title: "Private Limited Company Registration",
		Steps: []Step{
			{Key: "step1", Title: "Company Details", Fields: []FieldDef{
				field("proposedName1", "Proposed Company Name (Preference 1)", KindText, true),
				field("proposedName2", "Proposed Company Name (Preference 2)", KindText, false),
				field("businessActivity", "Main Business Activity", KindText, true),
				choice(CountField, "Number of Directors", KindSelect, true, countOptions()...),
				field("state", "State of Registered Office", KindText, true),
			}},
			{Key: "step2", Title: "Share Capital", Fields: []FieldDef{
				field("authorizedCapital", "Authorized Capital (INR)", KindNumber, true),
				field("paidUpCapital", "Paid-up Capital (INR)", KindNumber, true),
			}},
			{Key: "step3", Title: "Registered Office", Fields: []FieldDef{
				field("address", "Office Address", KindText, true),
				choice("ownershipType", "Premises Ownership", KindSelect, true, premisesOptions...),
				field("rentAgreement", "Rent Agreement", KindFile, true).when("ownershipType", "Rented"),
				field("electricityBill", "Latest Electricity Bill", KindFile, true),
				field("noc", "NOC from Owner", KindFile, false),
			}},
			{Key: "step4", Title: "Directors"},
			{Key: "step5", Title: "Declaration", Fields: []FieldDef{
				field("declaration", "I confirm the above details are true", KindCheckbox, true),
			}},
		},
		DirectorsStep: "step4",
		Capital:       &CapitalRule{Step: "step2", Authorized: "authorizedCapital", PaidUp: "paidUpCapital"},
	},
	{
		Key:   GST,
		Title: "GST Registration",
		Steps: []Step{
			{Key: "step1", Title: "Business Details", Fields: []FieldDef{
				field("businessName", "Legal Name of Business", KindText, true),
				choiceOf("constitution", "Constitution of Business", KindSelect, true,
					"Proprietorship", "Partnership",
					widget.Option{Value: "Private Limited", Label: "Private Limited Company"},
					widget.Option{Value: "LLP", Label: "Limited Liability Partnership"}),
				field("pan", "PAN of Business", KindPAN, true),
				choice(CountField, "Number of Promoters/Partners", KindSelect, true, countOptions()...),
			}},
			{Key: "step2", Title: "Promoters / Partners"},
			{Key: "step3", Title: "Place of Business", Fields: []FieldDef{
				field("principalPlaceAddress", "Principal Place of Business", KindText, true),
				choice("premisesType", "Premises", KindSelect, true, premisesOptions...),
				field("rentAgreement", "Rent Agreement", KindFile, true).when("premisesType", "Rented"),
				field("electricityBill", "Electricity Bill", KindFile, true),
				field("bankAccountNumber", "Bank Account Number", KindNumber, true),
				field("ifsc", "IFSC Code", KindText, true),
				field("cancelledCheque", "Cancelled Cheque", KindFile, true),
			}},
			{Key: "step4", Title: "Declaration", Fields: []FieldDef{
				field("declaration", "I confirm the above details are true", KindCheckbox, true),
			}},
		},
		DirectorsStep: "step2",
	},
	{
		Key:   StartupIndia,
		Title: "Startup India (DPIIT) Recognition",
		Steps: []Step{
			{Key: "step1", Title: "Entity Details", Fields: []FieldDef{
				field("entityName", "Name of Entity", KindText, true),
				field("incorporationNumber", "CIN / LLPIN / Registration Number", KindText, true),
				choice("sector", "Sector", KindSelect, true,
					"Agriculture", "Fintech", "Healthcare", "Education", "IT Services", "Manufacturing", "Other"),
				choice(CountField, "Number of Directors/Partners", KindSelect, true, countOptions()...),
			}},
			{Key: "step2", Title: "Directors / Partners"},
			{Key: "step3", Title: "Innovation", Fields: []FieldDef{
				field("innovationDescription", "How is the startup innovative?", KindText, true),
				choice("hasPatent", "Has a patent been filed?", KindYesNo, true, Yes, No),
				field("patentNumber", "Patent Application Number", KindText, true).when("hasPatent", Yes),
				field("incorporationCertificate", "Certificate of Incorporation", KindFile, true),
				field("pitchDeck", "Pitch Deck", KindFile, false),
			}},
			{Key: "step4", Title: "Funding", Fields: []FieldDef{
				choice("fundingReceived", "Has the startup received funding?", KindYesNo, true, Yes, No),
				field("fundingAmount", "Funding Amount (INR)", KindNumber, true).when("fundingReceived", Yes),
				field("declaration", "I confirm the above details are true", KindCheckbox, true),
			}},
		},
		DirectorsStep: "step2",
	},
	{
		Key:   Proprietorship,
		Title: "Proprietorship Registration",
		Steps: []Step{
			{Key: "step1", Title: "Proprietor Details", Fields: []FieldDef{
				field("proprietorName", "Proprietor Name", KindText, true),
				field("email", "Email", KindEmail, true),
				field("mobile", "Mobile Number", KindPhone, true),
				field("pan", "PAN", KindPAN, true),
				field("aadhaar", "Aadhaar Number", KindAadhaar, true),
			}},
			{Key: "step2", Title: "Business Details", Fields: []FieldDef{
				field("businessName", "Business Name", KindText, true),
				field("businessAddress", "Business Address", KindText, true),
				choice("registrationsNeeded", "Registrations Required", KindMultiSelect, true,
					"GST", "MSME (Udyam)", "Shop & Establishment", "Trade License"),
			}},
			{Key: "step3", Title: "Documents", Fields: []FieldDef{
				field("panCard", "PAN Card", KindFile, true),
				field("aadhaarCard", "Aadhaar Card", KindFile, true),
				field("photo", "Passport Size Photo", KindFile, true),
			}},
		},
	},
	{
		Key:   FSSAI,
		Title: "FSSAI Food License",
		Steps: []Step{
			{Key: "step1", Title: "Business Details", Fields: []FieldDef{
				field("businessName", "Name of Food Business", KindText, true),
				choice("licenseType", "License Type", KindSelect, true,
					"Basic Registration", "State License", "Central License"),
				choice("kindOfBusiness", "Kind of Business", KindSelect, true,
					"Manufacturer", "Trader", "Retailer", "Restaurant", "Storage", "Transporter"),
			}},
			{Key: "step2", Title: "Premises", Fields: []FieldDef{
				field("premisesAddress", "Premises Address", KindText, true),
				choice("foodCategories", "Food Categories", KindMultiSelect, true,
					"Dairy", "Bakery", "Beverages", "Meat & Poultry", "Packaged Food", "Fruits & Vegetables"),
			}},
			{Key: "step3", Title: "Documents", Fields: []FieldDef{
				field("photoId", "Photo Identity Proof", KindFile, true),
				field("premisesProof", "Proof of Possession of Premises", KindFile, true),
			}},
		},
	},
}

// Registrations lists every supported registration type.
func Registrations() []*Schema { return catalog }

// Lookup finds a registration type by key.
func Lookup(key string) (*Schema, bool) {
	return lo.Find(catalog, func(s *Schema) bool { return s.Key == key })
}

// RequiredDocuments lists the labels of the documents a registration asks for.
func RequiredDocuments(s *Schema) []string {
	docs := lo.Map(s.FileFields(), func(f FieldDef, _ int) string { return f.Label })
	if s.HasDirectors() {
		for _, f := range DirectorFields {
			if f.Kind == KindFile {
				docs = append(docs, f.Label+" of each director")
			}
		}
	}
	return lo.Uniq(docs)
}
