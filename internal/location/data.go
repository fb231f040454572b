package location

// DefaultDistricts is the shipped delivery directory: Dhaka city proper,
// its commuter belt, and the rest of the country as a single national tier.
func DefaultDistricts() []District {
	return []District{
		{
			Name: "Dhaka",
			Zone: ZoneDhakaCity,
			Areas: []string{
				"Badda", "Banani", "Bashundhara", "Dhanmondi", "Farmgate",
				"Gulshan", "Jatrabari", "Khilgaon", "Mirpur", "Mohammadpur",
				"Motijheel", "Old Dhaka", "Rampura", "Tejgaon", "Uttara",
			},
		},
		{
			Name:  "Gazipur",
			Zone:  ZoneSuburban,
			Areas: []string{"Board Bazar", "Gazipur Sadar", "Kaliakair", "Konabari", "Tongi"},
		},
		{
			Name:  "Narayanganj",
			Zone:  ZoneSuburban,
			Areas: []string{"Bhulta", "Fatullah", "Narayanganj Sadar", "Rupganj", "Siddhirganj"},
		},
		{
			Name:  "Savar",
			Zone:  ZoneSuburban,
			Areas: []string{"Ashulia", "Hemayetpur", "Savar Sadar"},
		},
		{
			Name:  "Chattogram",
			Zone:  ZoneNational,
			Areas: []string{"Agrabad", "Chawkbazar", "Halishahar", "Nasirabad", "Pahartali", "Patenga"},
		},
		{
			Name:  "Sylhet",
			Zone:  ZoneNational,
			Areas: []string{"Ambarkhana", "Bandar Bazar", "Shahjalal Upashahar", "Zindabazar"},
		},
		{
			Name:  "Rajshahi",
			Zone:  ZoneNational,
			Areas: []string{"Boalia", "Motihar", "Rajpara", "Shah Makhdum"},
		},
		{
			Name:  "Khulna",
			Zone:  ZoneNational,
			Areas: []string{"Daulatpur", "Khalishpur", "Sonadanga"},
		},
		{
			Name:  "Barishal",
			Zone:  ZoneNational,
			Areas: []string{"Band Road", "Nathullabad", "Rupatali"},
		},
		{
			Name:  "Rangpur",
			Zone:  ZoneNational,
			Areas: []string{"Jahaj Company", "Modern More", "Shapla Chattar"},
		},
		{
			Name:  "Mymensingh",
			Zone:  ZoneNational,
			Areas: []string{"Charpara", "Ganginarpar", "Town Hall"},
		},
		{
			Name:  "Cumilla",
			Zone:  ZoneNational,
			Areas: []string{"Cantonment", "Chawkbazar", "Kandirpar"},
		},
	}
}

// NewDefaultDirectory builds a Directory over DefaultDistricts.
func NewDefaultDirectory() *Directory {
	return NewDirectory(DefaultDistricts())
}
