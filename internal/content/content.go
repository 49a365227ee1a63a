package content

// Base values for the site's meta tags; pages append their own suffixes.
const (
	SiteBaseURL = "https://sveltekit-static-blog-template.vercel.app/"
	Title       = "Zero Energy Home"
	Description = "Casas de enrgía cero son casas que producen tanta energía como consumen. " +
		"Esto se logra a través de la eficiencia energética y la generación de energía renovable."
	Image = SiteBaseURL + "/images/site-preview.png"
)

var keywords = []string{
	"Svelte",
	"SvelteKit",
	"Template",
	"Blog",
	"Starter",
	"Static Site",
}

type Meta struct {
	SiteBaseURL string   `json:"siteBaseUrl"`
	Keywords    []string `json:"keywords"`
	Description string   `json:"description"`
	Title       string   `json:"title"`
	Image       string   `json:"image"`
}

func SiteMeta() Meta {
	kw := make([]string, len(keywords))
	copy(kw, keywords)
	return Meta{
		SiteBaseURL: SiteBaseURL,
		Keywords:    kw,
		Description: Description,
		Title:       Title,
		Image:       Image,
	}
}

type Tag struct {
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}

type Feature struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Tags        []Tag  `json:"tags,omitempty"`
}

// Features returns the marketing cards shown on the landing page.
func Features() []Feature {
	return []Feature{
		{
			Name:        "Eficiencia Energética",
			Description: "Maximización de la generación de energía con recursos limitados.",
			Image:       "images/features/solar4.jpeg",
			Tags:        []Tag{{Label: "Powered by MDsveX"}},
		},
		{
			Name:        "Minimización de Costos",
			Description: "Reducción de costos operativos y de inversión mediante decisiones óptimas.",
			Image:       "images/features/solar5.jpeg",
			Tags:        []Tag{{Label: "Primary Color"}, {Label: "Secondary Color", Color: "secondary"}},
		},
		{
			Name:        "Sustentabilidad",
			Description: "Optimización del uso de materiales, reduciendo el impacto ambiental.",
			Image:       "images/features/solar6.jpeg",
		},
		{
			Name:        "Menos uso de combustibles",
			Description: "Disminuye la necesidad del uso de combustibles fósiles.",
			Image:       "images/features/solar7.jpeg",
			Tags:        []Tag{{Label: "Powered by Image Transmutation"}},
		},
		{
			Name:        "Reduce la huella de carbono",
			Description: "Menos dependencia de fuentes de energía no renovables.",
			Image:       "images/features/solar8.jpeg",
		},
		{
			Name:        "Es renovable y sostenible",
			Description: "El uso de paneles solares se puede aprovechar en cualquier lugar.",
			Image:       "images/features/solar9.jpeg",
		},
	}
}
