package maintenance

import "time"

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TenantRequests are the requests raised from the demo tenant apartment.
func TenantRequests() []*Request {
	const property = "Appartement 3 pièces - Kaloum"

	return []*Request{
		{
			Property:    property,
			Type:        "Plomberie",
			Title:       "Fuite d'eau dans la salle de bain",
			Description: "Le robinet de la douche fuit légèrement",
			Priority:    PriorityHigh,
			Status:      StatusInProgress,
			Date:        day(2024, time.November, 20),
		},
		{
			Property:    property,
			Type:        "Électricité",
			Title:       "Ampoule grillée dans le couloir",
			Description: "L'ampoule du couloir principal ne fonctionne plus",
			Priority:    PriorityLow,
			Status:      StatusResolved,
			Date:        day(2024, time.November, 10),
		},
		{
			Property:    property,
			Type:        "Climatisation",
			Title:       "Problème de climatisation",
			Description: "La climatisation de la chambre fait du bruit",
			Priority:    PriorityMedium,
			Status:      StatusPending,
			Date:        day(2024, time.November, 25),
		},
	}
}

// OwnerInterventions are the quoted works across the demo owner portfolio.
func OwnerInterventions() []*Request {
	return []*Request{
		{
			PropertyID:  "1",
			Property:    "Villa Moderne Kaloum",
			Type:        "Plomberie",
			Title:       "Plomberie",
			Description: "Réparation fuite salle de bain",
			Priority:    PriorityMedium,
			Status:      StatusResolved,
			Date:        day(2025, time.November, 20),
			Cost:        500_000,
		},
		{
			PropertyID:  "2",
			Property:    "Appartement Matam",
			Type:        "Électricité",
			Title:       "Électricité",
			Description: "Remplacement tableau électrique",
			Priority:    PriorityHigh,
			Status:      StatusInProgress,
			Date:        day(2025, time.November, 25),
			Cost:        1_200_000,
		},
		{
			PropertyID:  "4",
			Property:    "Villa Kipé",
			Type:        "Peinture",
			Title:       "Peinture",
			Description: "Rénovation façade extérieure",
			Priority:    PriorityLow,
			Status:      StatusPending,
			Date:        day(2025, time.December, 1),
			Cost:        3_500_000,
		},
	}
}
