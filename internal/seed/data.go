package seed

import (
	"strings"

	"github.com/iliyamo/backoffice/internal/model"
)

type productRow struct {
	name, description string
	cents             int64
	category          string
	quantity          int
}

var demoProducts = []productRow{
	{"Laptop Dell XPS 15", "Potente laptop con processore Intel i7, 16GB RAM, SSD 512GB", 129999, "Elettronica", 15},
	{"iPhone 14 Pro", "Smartphone Apple con chip A16 Bionic, fotocamera 48MP", 119900, "Elettronica", 25},
	{"Samsung Galaxy S23", "Smartphone Android flagship con display AMOLED", 89999, "Elettronica", 30},
	{"MacBook Air M2", "Laptop Apple ultraleggero con chip M2", 144900, "Elettronica", 12},
	{"iPad Air", "Tablet Apple con display 10.9 pollici", 64999, "Elettronica", 20},
	{"Mouse Logitech MX Master 3", "Mouse wireless ergonomico per produttività", 9999, "Accessori", 50},
	{"Tastiera Meccanica Keychron K2", "Tastiera meccanica wireless retroilluminata", 8999, "Accessori", 35},
	{"Monitor LG 27'' 4K", "Monitor 4K UHD con HDR10", 44999, "Elettronica", 18},
	{"Cuffie Sony WH-1000XM5", "Cuffie wireless con cancellazione del rumore", 39999, "Audio", 22},
	{"Speaker Bluetooth JBL Flip 6", "Speaker portatile impermeabile", 12999, "Audio", 40},
	{"Webcam Logitech C920", "Webcam Full HD 1080p per streaming", 7999, "Accessori", 45},
	{"SSD Samsung 1TB", "SSD NVMe M.2 ad alte prestazioni", 11999, "Componenti", 60},
	{"RAM Corsair Vengeance 32GB", "Memoria DDR4 3200MHz kit 2x16GB", 14999, "Componenti", 28},
	{"Scheda Video RTX 4070", "GPU NVIDIA per gaming e rendering", 64900, "Componenti", 8},
	{"Processore AMD Ryzen 7", "CPU 8 core 16 thread per gaming", 32999, "Componenti", 15},
	{"Zaino Laptop Samsonite", "Zaino porta PC fino a 15.6 pollici", 7999, "Accessori", 55},
	{"Hub USB-C 7-in-1", "Hub multiporta con HDMI, USB 3.0, lettore SD", 4999, "Accessori", 70},
	{"Powerbank Anker 20000mAh", "Batteria esterna ricarica rapida", 5999, "Accessori", 80},
	{"Microfono Blue Yeti", "Microfono USB professionale per podcast", 12999, "Audio", 25},
	{"Smartwatch Apple Watch Series 8", "Smartwatch con GPS e monitoraggio salute", 44900, "Elettronica", 18},
	{"Tablet Samsung Galaxy Tab S8", "Tablet Android 11 pollici con S Pen", 69999, "Elettronica", 14},
	{"Router WiFi 6 TP-Link", "Router mesh dual-band AX3000", 14999, "Rete", 32},
	{"Switch Ethernet 8 porte", "Switch Gigabit non gestito", 3999, "Rete", 45},
	{"Stampante HP LaserJet", "Stampante laser monocromatica WiFi", 19999, "Periferiche", 12},
	{"Scanner Epson Perfection", "Scanner piano ad alta risoluzione", 25999, "Periferiche", 8},
	{"Webcam 4K Razer Kiyo Pro", "Webcam professionale con HDR", 19999, "Accessori", 16},
	{"Sedia Gaming DXRacer", "Sedia ergonomica per gaming con supporto lombare", 34999, "Arredamento", 10},
	{"Scrivania Regolabile", "Scrivania elettrica sit-stand 120x60cm", 44999, "Arredamento", 6},
	{"Lampada LED da Scrivania", "Lampada dimmerabile con ricarica wireless", 5999, "Arredamento", 42},
	{"Supporto Laptop Elevato", "Stand in alluminio regolabile", 3999, "Accessori", 65},
	{"Cable Management Kit", "Kit organizzatore cavi per scrivania", 2499, "Accessori", 90},
	{"Mousepad XXL Gaming", "Tappetino mouse 90x40cm antiscivolo", 2999, "Accessori", 75},
	{"Luci LED RGB Philips Hue", "Striscia LED smart 2 metri", 7999, "Smart Home", 35},
	{"Telecamera Sicurezza WiFi", "Telecamera IP 1080p con visione notturna", 8999, "Smart Home", 28},
	{"Smart Plug TP-Link", "Presa intelligente WiFi con monitoraggio energia", 1999, "Smart Home", 100},
	{"Lettore NAS 2-Bay", "Network Attached Storage 8TB", 29999, "Storage", 12},
	{"Hard Disk Esterno 4TB", "HDD USB 3.0 portatile", 9999, "Storage", 40},
	{"Chiavetta USB 128GB", "Pendrive USB 3.1 veloce", 2499, "Storage", 120},
	{"Adattatore USB-C a HDMI", "Convertitore 4K 60Hz", 1999, "Accessori", 85},
	{"Cavo HDMI 2.1 3m", "Cavo ultra high speed 8K", 2999, "Accessori", 95},
}

func products() []model.Product {
	out := make([]model.Product, len(demoProducts))
	for i, r := range demoProducts {
		out[i] = model.Product{Name: r.name, Description: r.description, Category: r.category, Quantity: r.quantity}
		out[i].SetPriceCents(r.cents)
	}
	return out
}

type permissionRow struct{ name, description, category string }

var demoPermissions = []permissionRow{
	{"USER_VIEW", "Visualizzare utenti", "USERS"},
	{"USER_CREATE", "Creare nuovi utenti", "USERS"},
	{"USER_EDIT", "Modificare utenti esistenti", "USERS"},
	{"USER_DELETE", "Eliminare utenti", "USERS"},
	{"USER_MANAGE_PROFILES", "Gestire profili utenti", "USERS"},
	{"PRODUCT_VIEW", "Visualizzare prodotti", "PRODUCTS"},
	{"PRODUCT_CREATE", "Creare nuovi prodotti", "PRODUCTS"},
	{"PRODUCT_EDIT", "Modificare prodotti esistenti", "PRODUCTS"},
	{"PRODUCT_DELETE", "Eliminare prodotti", "PRODUCTS"},
	{"PRODUCT_EXPORT", "Esportare dati prodotti", "PRODUCTS"},
	{"FILE_VIEW", "Visualizzare file", "FILES"},
	{"FILE_UPLOAD", "Caricare file", "FILES"},
	{"FILE_DOWNLOAD", "Scaricare file", "FILES"},
	{"FILE_DELETE", "Eliminare file", "FILES"},
	{"FILE_MANAGE_METADATA", "Gestire metadati file", "FILES"},
	{"REPORT_VIEW", "Visualizzare report", "REPORTS"},
	{"REPORT_CREATE", "Creare report", "REPORTS"},
	{"REPORT_EXPORT", "Esportare report", "REPORTS"},
	{"SYSTEM_ADMIN", "Accesso amministratore sistema", "SYSTEM"},
	{"SYSTEM_SETTINGS", "Modificare impostazioni sistema", "SYSTEM"},
	{"SYSTEM_LOGS", "Visualizzare log di sistema", "SYSTEM"},
	{"SYSTEM_BACKUP", "Gestire backup", "SYSTEM"},
}

func permissions() []model.Permission {
	out := make([]model.Permission, len(demoPermissions))
	for i, r := range demoPermissions {
		out[i] = model.Permission{Name: r.name, Description: r.description, Category: r.category, Active: true}
	}
	return out
}

type contentRow struct {
	fileName string
	size     int64
	fileType string
	category string
	desc     string
	hash     string
	path     string
	mime     string
	user     string
	tags     string
	meta     []string
}

var demoContents = []contentRow{
	{"documento-progetto-2024.pdf", 2458624, "PDF", "Documenti", "Documento di progetto completo con specifiche tecniche",
		"hash123456abc", "/uploads/docs/", "application/pdf", "admin", "progetto, specifiche, 2024",
		[]string{"Autore", "Mario Rossi", "Versione", "1.2", "Status", "Approvato"}},
	{"presentazione-vendite-Q4.pptx", 8945632, "DOCUMENT", "Documenti", "Presentazione risultati vendite quarto trimestre",
		"hash789def012", "/uploads/presentations/", "application/vnd.openxmlformats-officedocument.presentationml.presentation", "sales_team", "vendite, Q4, presentazione",
		[]string{"Dipartimento", "Vendite", "Trimestre", "Q4", "Anno", "2024"}},
	{"logo-aziendale.png", 156789, "IMAGE", "Immagini", "Logo aziendale in alta risoluzione",
		"hash345ghi678", "/uploads/images/", "image/png", "marketing", "logo, branding, aziendale",
		[]string{"Risoluzione", "2048x2048", "Formato", "PNG", "Trasparenza", "Si"}},
	{"video-tutorial-prodotto.mp4", 45678912, "VIDEO", "Video", "Video tutorial sull'utilizzo del prodotto",
		"hash901jkl234", "/uploads/videos/", "video/mp4", "support", "tutorial, prodotto, guida",
		[]string{"Durata", "15:30", "Qualità", "1080p", "Lingua", "Italiano"}},
	{"database-backup-12-12-2024.zip", 123456789, "ARCHIVE", "Archivi", "Backup completo database di produzione",
		"hash567mno890", "/backups/", "application/zip", "sysadmin", "backup, database, produzione",
		[]string{"Tipo", "Full Backup", "Compressione", "ZIP", "Encrypted", "Yes"}},
	{"foto-evento-azienda.jpg", 3456789, "IMAGE", "Immagini", "Fotografia dell'evento aziendale annuale",
		"hash234pqr567", "/uploads/events/", "image/jpeg", "hr_team", "evento, aziendale, team building",
		[]string{"Data Evento", "10/12/2024", "Fotografo", "Studio Luce", "Persone", "85"}},
	{"manuale-utente.pdf", 1234567, "PDF", "Documenti", "Manuale utente completo del software",
		"hash678stu901", "/uploads/manuals/", "application/pdf", "tech_writer", "manuale, software, utente",
		[]string{"Versione Software", "3.5", "Pagine", "124", "Lingua", "Italiano"}},
	{"registrazione-webinar.mp4", 89456123, "VIDEO", "Video", "Registrazione webinar formazione prodotto",
		"hash345vwx678", "/uploads/webinars/", "video/mp4", "training", "webinar, formazione, registrazione",
		[]string{"Relatore", "Luca Bianchi", "Partecipanti", "156", "Data", "05/12/2024"}},
	{"contratto-fornitore.pdf", 567890, "PDF", "Documenti", "Contratto di fornitura servizi IT",
		"hash901yzA234", "/uploads/contracts/", "application/pdf", "legal", "contratto, fornitore, legale",
		[]string{"Fornitore", "Tech Solutions Srl", "Validità", "2024-2026", "Confidenziale", "Si"}},
	{"campagna-marketing.zip", 23456789, "ARCHIVE", "Archivi", "Materiali completi campagna marketing Q1",
		"hashBCD567efg", "/uploads/marketing/", "application/zip", "marketing", "marketing, campagna, materiali",
		[]string{"Campagna", "Spring Launch", "Budget", "50k EUR", "Canali", "Digital+Print"}},
	{"screenshot-bug-report.png", 234567, "IMAGE", "Immagini", "Screenshot per segnalazione bug applicazione",
		"hash890HIJ123", "/uploads/bugs/", "image/png", "developer", "bug, screenshot, segnalazione",
		[]string{"Bug ID", "BUG-2024-456", "Priorità", "Alta", "Status", "In Progress"}},
	{"podcast-intervista-ceo.mp3", 12345678, "AUDIO", "Audio", "Podcast intervista al CEO aziendale",
		"hashKLM456nop", "/uploads/audio/", "audio/mpeg", "communications", "podcast, intervista, CEO",
		[]string{"Durata", "45:20", "Interviewer", "Radio Business", "Data", "01/12/2024"}},
	{"template-fattura.docx", 89123, "DOCUMENT", "Documenti", "Template documento per emissione fatture",
		"hashQRS789tuv", "/uploads/templates/", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "accounting", "template, fattura, documento",
		[]string{"Versione", "2.0", "Ultimo Aggiornamento", "15/11/2024", "Tipo", "Template"}},
	{"infografica-statistiche.svg", 456789, "IMAGE", "Immagini", "Infografica con statistiche aziendali 2024",
		"hashWXY012zab", "/uploads/infographics/", "image/svg+xml", "analyst", "infografica, statistiche, dati",
		[]string{"Anno", "2024", "Designer", "Creative Studio", "Formato", "Vettoriale"}},
	{"codice-sorgente-modulo.zip", 5678901, "ARCHIVE", "Archivi", "Codice sorgente modulo autenticazione",
		"hashCDE345fgh", "/repos/modules/", "application/zip", "developer", "codice, sorgente, modulo",
		[]string{"Linguaggio", "Java", "Framework", "Spring Boot", "Version", "1.0.0"}},
	{"catalogo-prodotti-2024.pdf", 12345678, "PDF", "Documenti", "Catalogo completo prodotti per l'anno 2024",
		"hashIJK678lmn", "/uploads/catalogs/", "application/pdf", "product_manager", "catalogo, prodotti, 2024",
		[]string{"Prodotti", "340", "Pagine", "180", "Formato", "A4"}},
	{"video-onboarding-dipendenti.mp4", 34567890, "VIDEO", "Video", "Video introduttivo per nuovi dipendenti",
		"hashOPQ901rst", "/uploads/hr/", "video/mp4", "hr_team", "onboarding, dipendenti, introduzione",
		[]string{"Durata", "22:15", "Ultimo Update", "10/11/2024", "Lingua", "Italiano"}},
	{"rapporto-finanziario-annuale.xlsx", 2345678, "DOCUMENT", "Documenti", "Rapporto finanziario completo anno fiscale 2024",
		"hashUVW234xyz", "/uploads/finance/", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "cfo", "finanziario, rapporto, annuale",
		[]string{"Anno Fiscale", "2024", "Fogli", "15", "Confidenziale", "Si"}},
	{"sfondo-desktop-aziendale.jpg", 4567890, "IMAGE", "Immagini", "Sfondo desktop con branding aziendale",
		"hashABC567def", "/uploads/wallpapers/", "image/jpeg", "it_support", "sfondo, desktop, branding",
		[]string{"Risoluzione", "3840x2160", "Formato", "4K", "Uso", "Aziendale"}},
	{"guida-policy-sicurezza.pdf", 1567890, "PDF", "Documenti", "Guida completa policy di sicurezza informatica",
		"hashGHI890jkl", "/uploads/security/", "application/pdf", "security_officer", "sicurezza, policy, guida",
		[]string{"Versione", "3.1", "Approvazione", "CDA 20/11/2024", "Obbligatoria", "Si"}},
}

func contents() []model.Content {
	out := make([]model.Content, len(demoContents))
	for i, r := range demoContents {
		meta := model.Metadata{}
		for j := 0; j+1 < len(r.meta); j += 2 {
			meta[r.meta[j]] = r.meta[j+1]
		}
		out[i] = model.Content{
			FileName:       r.fileName,
			FileSize:       r.size,
			FileType:       r.fileType,
			FileHash:       r.hash,
			OriginalPath:   r.path,
			MimeType:       r.mime,
			UploadUser:     r.user,
			CustomMetadata: meta,
			Description:    r.desc,
			Category:       r.category,
			Tags:           r.tags,
		}
	}
	return out
}

var meetingTranscription = strings.Join([]string{
	"TRASCRIZIONE COMPLETA - Riunione Mensile Team - 15 Novembre 2024",
	"",
	"Partecipanti: Mario Rossi, Giulia Bianchi, Luca Verdi, Anna Neri, Francesco Gialli",
	"",
	"Mario: Buongiorno a tutti, iniziamo con la revisione dello sprint corrente. Abbiamo completato 23 delle 28 user story pianificate.",
	"Giulia: Abbiamo completato l'integrazione del nuovo sistema di autenticazione OAuth2 e il nuovo modulo di gestione file.",
	"Luca: Per il prossimo sprint ho preparato una lista di 25 user story prioritarie.",
	"Anna: Gli utenti hanno trovato confusionale il flusso di caricamento file multipli.",
	"Francesco: Abbiamo identificato 12 bug, 10 dei quali sono già stati risolti.",
	"",
	"Fine trascrizione - Durata: 45 minuti",
}, "\n")

var meetingTranslation = strings.Join([]string{
	"COMPLETE TRANSCRIPTION - Monthly Team Meeting - November 15, 2024",
	"",
	"Participants: Mario Rossi, Giulia Bianchi, Luca Verdi, Anna Neri, Francesco Gialli",
	"",
	"Mario: Good morning everyone, let's start with the current sprint review. We completed 23 out of 28 planned user stories.",
	"Giulia: We completed the integration of the new OAuth2 authentication system and the new file management module.",
	"Luca: For the next sprint I've prepared a list of 25 priority user stories.",
	"Anna: Users found the multiple file upload flow confusing.",
	"Francesco: We identified 12 bugs, 10 of which have already been resolved.",
	"",
	"End of transcription - Duration: 45 minutes",
}, "\n")

var interviewTranscription = strings.Join([]string{
	"TRASCRIZIONE INTERVISTA - Cliente ABC - 10 Novembre 2024",
	"Intervistatore: Giulia Bianchi",
	"Cliente: Marco Ferrari (CTO, ABC Corporation)",
	"",
	"Giulia: Quali sono le principali sfide con il vostro attuale sistema di gestione documentale?",
	"Marco: Il sistema non scala bene, manca un versioning robusto e l'interfaccia è datata.",
}, "\n")

var demoTranscription = "Benvenuti alla demo del prodotto. Oggi vedremo le nuove funzionalità di ricerca e gestione documentale."

var demoTranslation = "Welcome to the product demo. Today we will look at the new search and document management features."

type fileRow struct {
	name, fileType   string
	size             int64
	uploadedBy       string
	category, status string
	description      string
	transcription    string
	translation      string
}

var demoFiles = []fileRow{
	{"meeting_recording_2024.mp4", "video/mp4", 15728640, "Mario Rossi", "Video", "APPROVED",
		"Registrazione della riunione mensile del team", meetingTranscription, meetingTranslation},
	{"interview_client_abc.mp3", "audio/mp3", 5242880, "Giulia Bianchi", "Audio", "PENDING",
		"Intervista con il cliente ABC per il nuovo progetto", interviewTranscription, ""},
	{"quarterly_report_Q4.pdf", "application/pdf", 2097152, "Luca Verdi", "Report", "APPROVED",
		"Report trimestrale Q4 2024", "", ""},
	{"product_demo_2024.pptx", "application/vnd.openxmlformats-officedocument.presentationml.presentation", 8388608, "Anna Neri", "Presentazioni", "PENDING",
		"Demo del prodotto per il cliente internazionale", demoTranscription, demoTranslation},
}
