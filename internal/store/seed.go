package store

// seedProducts returns the products every new in-memory store starts with.
func seedProducts() []Product {
	return []Product{
		{ID: 1, Name: ptr("Honda Civic"), Description: ptr("Luxury Model 2013")},
		{ID: 2, Name: ptr("Toyota Corolla"), Description: ptr("Economy Sedan 2014")},
		{ID: 3, Name: ptr("Ford Focus"), Description: ptr("Compact Hatchback 2012")},
		{ID: 4, Name: ptr("Subaru Outback"), Description: ptr("All-Wheel Drive Wagon 2015")},
		{ID: 5, Name: ptr("Mazda CX-5"), Description: ptr("Crossover SUV 2016")},
	}
}

func ptr(s string) *string {
	return &s
}
