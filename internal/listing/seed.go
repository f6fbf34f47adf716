package listing

// DefaultListings is the catalogue shown on the public site.
func DefaultListings() []*Listing {
	return []*Listing{
		{
			Title:       "Villa Moderne Front de Mer",
			Description: "Villa contemporaine avec vue sur l'océan, piscine et jardin paysager.",
			Price:       12_500_000_000,
			Location:    "Camayenne, Conakry",
			Beds:        4,
			Baths:       3,
			Area:        3200,
			Kind:        KindVilla,
			Type:        TypeSale,
			Status:      StatusAvailable,
			ImageURL:    "https://picsum.photos/800/600?random=1",
			Featured:    true,
		},
		{
			Title:       "Appartement Moderne Centre-Ville",
			Description: "Appartement lumineux au cœur de Kaloum, proche des commerces.",
			Price:       4_500_000,
			Location:    "Kaloum, Conakry",
			Beds:        2,
			Baths:       2,
			Area:        1400,
			Kind:        KindApartment,
			Type:        TypeRent,
			Status:      StatusAvailable,
			ImageURL:    "https://picsum.photos/800/600?random=2",
		},
		{
			Title:       "Résidence Familiale de Prestige",
			Description: "Grande maison familiale dans un quartier calme de Ratoma.",
			Price:       8_900_000_000,
			Location:    "Kipé, Ratoma",
			Beds:        5,
			Baths:       4,
			Area:        4100,
			Kind:        KindVilla,
			Type:        TypeSale,
			Status:      StatusAvailable,
			ImageURL:    "https://picsum.photos/800/600?random=3",
		},
		{
			Title:       "Studio Minimaliste",
			Description: "Studio meublé idéal pour jeune professionnel.",
			Price:       1_800_000,
			Location:    "Almamya, Kaloum",
			Beds:        1,
			Baths:       1,
			Area:        650,
			Kind:        KindApartment,
			Type:        TypeRent,
			Status:      StatusAvailable,
			ImageURL:    "https://picsum.photos/800/600?random=4",
		},
		{
			Title:       "Villa de Luxe aux Collines",
			Description: "Propriété d'exception sur les hauteurs avec vue panoramique.",
			Price:       21_000_000_000,
			Location:    "Taouyah, Dubréka",
			Beds:        6,
			Baths:       5,
			Area:        5500,
			Kind:        KindVilla,
			Type:        TypeSale,
			Status:      StatusAvailable,
			ImageURL:    "https://picsum.photos/800/600?random=5",
		},
		{
			Title:       "Maison avec Jardin",
			Description: "Maison familiale avec grand jardin arboré.",
			Price:       5_500_000_000,
			Location:    "Hamdallaye, Ratoma",
			Beds:        3,
			Baths:       2,
			Area:        1800,
			Kind:        KindVilla,
			Type:        TypeSale,
			Status:      StatusAvailable,
			ImageURL:    "https://picsum.photos/800/600?random=6",
		},
	}
}
