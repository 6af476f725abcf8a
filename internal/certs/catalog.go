// Package certs holds the certification reference catalog and the
// free-text extractor that finds certification mentions in survey answers.
package certs

import "github.com/sedecyt/industria-cli/internal/model"

// Catalog returns the static certification reference data synced into the
// certifications_catalog table at the start of each ETL run (upsert by
// acronym). SearchKeywords drive both exact catalog matching and free-text
// extraction; keep them uppercase.
func Catalog() []model.Certification {
	return []model.Certification{
		// ISO family
		{Name: "ISO 9001:2015", Acronym: "ISO9001", Category: "Calidad", ComplianceType: "Internacional",
			SearchKeywords: []string{"ISO 9001", "9001:2015", "ISO9001", "ISO DE CALIDAD", "9001"}, IsActive: true},
		{Name: "ISO 14001:2015", Acronym: "ISO14001", Category: "Medio Ambiente", ComplianceType: "Internacional",
			SearchKeywords: []string{"ISO 14001", "14001:2015", "14001", "AMBIENTAL"}, IsActive: true},
		{Name: "ISO 45001:2018", Acronym: "ISO45001", Category: "Seguridad y Salud Ocupacional", ComplianceType: "Internacional",
			SearchKeywords: []string{"ISO 45001", "45001:2018", "45001", "OHSAS", "SALUD OCUPACIONAL"}, IsActive: true},
		{Name: "ISO 22000", Acronym: "ISO22000", Category: "Inocuidad Alimentaria", ComplianceType: "Internacional",
			SearchKeywords: []string{"ISO 22000", "22000", "FOOD SAFETY", "INOCUIDAD"}, IsActive: true},
		{Name: "ISO 27001", Acronym: "ISO27001", Category: "Seguridad de la Información", ComplianceType: "Internacional",
			SearchKeywords: []string{"ISO 27001", "27001", "SEGURIDAD DE INFORMACION"}, IsActive: true},
		{Name: "ISO 17025", Acronym: "ISO17025", Category: "Laboratorios / Metrología", ComplianceType: "Internacional",
			SearchKeywords: []string{"ISO 17025", "17025", "CALIBRACION", "LABORATORIOS"}, IsActive: true},
		{Name: "ISO 13485", Acronym: "ISO13485", Category: "Dispositivos Médicos", ComplianceType: "Internacional",
			SearchKeywords: []string{"ISO 13485", "13485", "MEDICOS"}, IsActive: true},
		{Name: "ISO 50001", Acronym: "ISO50001", Category: "Gestión de la Energía", ComplianceType: "Internacional",
			SearchKeywords: []string{"ISO 50001", "50001", "ENERGIA"}, IsActive: true},
		{Name: "ISO 22301", Acronym: "ISO22301", Category: "Continuidad del Negocio", ComplianceType: "Internacional",
			SearchKeywords: []string{"ISO 22301", "22301", "CONTINUIDAD"}, IsActive: true},
		{Name: "ISO 26000", Acronym: "ISO26000", Category: "Responsabilidad Social", ComplianceType: "Internacional",
			SearchKeywords: []string{"ISO 26000", "26000", "RSC"}, IsActive: true},
		{Name: "ISO/TS 29001", Acronym: "ISO29001", Category: "Petróleo y Gas", ComplianceType: "Internacional",
			SearchKeywords: []string{"ISO 29001", "29001", "PETROLERO"}, IsActive: true},
		// Generic family mention; specific ISO hits take precedence in extraction.
		{Name: "ISO 9000", Acronym: "ISO9000", Category: "Calidad", ComplianceType: "Internacional",
			SearchKeywords: []string{"ISO 9000", "FAMILIA ISO 9000"}, IsActive: true},
		{Name: "ISO 16949 (Obsoleto)", Acronym: "ISO16949", Category: "Automotriz", ComplianceType: "Internacional",
			SearchKeywords: []string{"ISO 16949", "TS 16949"}, IsActive: true},

		// Automotive and aerospace
		{Name: "IATF 16949", Acronym: "IATF16949", Category: "Automotriz", ComplianceType: "Internacional",
			SearchKeywords: []string{"IATF 16949", "IATF", "16949"}, IsActive: true},
		{Name: "AS9100", Acronym: "AS9100", Category: "Aeroespacial", ComplianceType: "Internacional",
			SearchKeywords: []string{"AS9100", "AS 9100", "AEROESPACIAL"}, IsActive: true},
		{Name: "NADCAP", Acronym: "NADCAP", Category: "Aeroespacial", ComplianceType: "Internacional",
			SearchKeywords: []string{"NADCAP"}, IsActive: true},
		{Name: "VDA 6.3", Acronym: "VDA63", Category: "Automotriz", ComplianceType: "Internacional",
			SearchKeywords: []string{"VDA 6.3", "VDA"}, IsActive: true},

		// Trade and customs
		{Name: "C-TPAT", Acronym: "CTPAT", Category: "Comercio Exterior", ComplianceType: "Internacional",
			SearchKeywords: []string{"C-TPAT", "CTPAT"}, IsActive: true},
		{Name: "OEA (Operador Económico Autorizado)", Acronym: "OEA", Category: "Comercio Exterior", ComplianceType: "Nacional",
			SearchKeywords: []string{"OEA", "OPERADOR ECONOMICO"}, IsActive: true},
		{Name: "IMMEX", Acronym: "IMMEX", Category: "Comercio Exterior", ComplianceType: "Nacional",
			SearchKeywords: []string{"IMMEX", "MAQUILADORA"}, IsActive: true},

		// Food safety
		{Name: "FSSC 22000", Acronym: "FSSC22000", Category: "Inocuidad Alimentaria", ComplianceType: "Internacional",
			SearchKeywords: []string{"FSSC 22000", "FSSC"}, IsActive: true},
		{Name: "HACCP", Acronym: "HACCP", Category: "Inocuidad Alimentaria", ComplianceType: "Internacional",
			SearchKeywords: []string{"HACCP"}, IsActive: true},
		{Name: "Kosher", Acronym: "KOSHER", Category: "Inocuidad Alimentaria", ComplianceType: "Internacional",
			SearchKeywords: []string{"KOSHER"}, IsActive: true},
		{Name: "Halal", Acronym: "HALAL", Category: "Inocuidad Alimentaria", ComplianceType: "Internacional",
			SearchKeywords: []string{"HALAL"}, IsActive: true},

		// National / social
		{Name: "ESR (Empresa Socialmente Responsable)", Acronym: "ESR", Category: "Responsabilidad Social", ComplianceType: "Nacional",
			SearchKeywords: []string{"ESR", "SOCIALMENTE RESPONSABLE"}, IsActive: true},
		{Name: "Industria Limpia", Acronym: "PROFEPA", Category: "Medio Ambiente", ComplianceType: "Nacional",
			SearchKeywords: []string{"INDUSTRIA LIMPIA", "PROFEPA"}, IsActive: true},
		{Name: "SMETA", Acronym: "SMETA", Category: "Auditoría Ética", ComplianceType: "Internacional",
			SearchKeywords: []string{"SMETA", "SEDEX"}, IsActive: true},
	}
}
