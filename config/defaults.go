package config

var defaultTimeSlots = []string{"08h00", "10h00", "13h00", "15h00", "17h00"}

// frenchHolidays lists the public holidays the booking form closes. It must
// be extended every year.
var frenchHolidays = map[int][]string{
	2024: {
		"2024-01-01", // Nouvel An
		"2024-03-29", // Vendredi Saint
		"2024-04-01", // Lundi de Pâques
		"2024-05-01", // Fête du Travail
		"2024-05-08", // Victoire 1945
		"2024-05-09", // Ascension
		"2024-05-20", // Lundi de Pentecôte
		"2024-07-14", // Fête nationale
		"2024-08-15", // Assomption
		"2024-11-01", // Toussaint
		"2024-11-11", // Armistice
		"2024-12-25", // Noël
	},
	2025: {
		"2025-01-01",
		"2025-04-18",
		"2025-04-21",
		"2025-05-01",
		"2025-05-08",
		"2025-05-29",
		"2025-06-09",
		"2025-07-14",
		"2025-08-15",
		"2025-11-01",
		"2025-11-11",
		"2025-12-25",
	},
}

func defaultPacks() []PackConfig {
	return []PackConfig{
		{
			Slug:     "rongeur",
			Name:     "Pack traitement rongeur",
			Duration: "3h",
			Details: []string{
				"Inspection complète des lieux",
				"Identification des points d'entrée",
				"Pose d'appâts sécurisés",
				"Traitement par gel professionnel",
				"Conseils de prévention personnalisés",
				"Garantie de résultat 3 mois",
			},
		},
		{
			Slug:     "blattes-cafards",
			Name:     "Pack traitement cafards",
			Duration: "3h",
			Details: []string{
				"Diagnostic approfondi de l'infestation",
				"Traitement par gel insecticide longue durée",
				"Pulvérisation dans les zones critiques",
				"Pose de pièges moniteurs",
				"Plan de prévention sur mesure",
				"Suivi et garantie 6 mois",
			},
		},
		{
			Slug:     "punaises-de-lit",
			Name:     "Pack traitement punaises de lit",
			Duration: "4h",
			Details: []string{
				"Inspection minutieuse de la literie",
				"Traitement thermique haute température",
				"Pulvérisation insecticide résiduelle",
				"Traitement des textiles et mobilier",
				"Protocole de préparation détaillé",
				"Garantie totale 12 mois",
			},
		},
		{
			Slug:     "guepes-frelons",
			Name:     "Pack traitement nid de guêpes",
			Duration: "2h",
			Details: []string{
				"Localisation précise du nid",
				"Équipement de protection intégral",
				"Destruction complète du nid",
				"Enlèvement sécurisé des résidus",
				"Traitement préventif de la zone",
				"Intervention d'urgence possible",
			},
		},
	}
}
