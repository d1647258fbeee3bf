package resume

// profile is the site content. Edit here, then re-run `portfolio index` so the
// chatbot picks up the changes.
var profile = Profile{
	Name:        "Olu Kareem",
	Initials:    "OK",
	URL:         "https://www.olukareem.me",
	Location:    "Brooklyn, New York",
	Tagline:     "Full Stack Developer | Web & Mobile",
	Description: "I like to build modern, user-friendly web apps.",
	Summary: "I started in the music scene, but as I got into tech, I found a new creative outlet " +
		"through coding. Beginning as an intern at Splice, I soon became a software engineer, working " +
		"on tools for musicians and creators, including a desktop sample library built with TypeScript " +
		"and Angular, and a mobile music app using Dart and Flutter. Now, as a freelance developer " +
		"specializing in React and TypeScript, I'm focused on building unique tools and collaborating " +
		"with businesses and creatives to bring their visions to life.",

	PersonalPhilosophy: "Act before you're ready, focus on consistent growth, and always seek balance.",
	ValuesAndBeliefs: "Authenticity and resilience define my journey. I value community, creative " +
		"freedom, and creating meaningful change.",
	FunFacts: []string{
		"Started rapping and gained fame young, but moved into tech for stability.",
		"I've lived in Brooklyn, Lisbon, Oakland, Cleveland and Chiang Mai, traveling the world as a digital nomad.",
		"In the 2010s I released multiple rap mixtapes under the names Olu and Olukara; my most recent album came out in 2024 under the alias Glolorun.",
	},
	SoftSkills: "Creative problem-solving, adaptability, resilience, empathy, cultural awareness, " +
		"strong communication, and a collaborative mindset.",
	Interests: "Music production and sound design, coding, travel, photography and videography, " +
		"fitness, philosophy, avant-garde design.",

	Skills: []string{
		"Full-Stack Development",
		"Cross-Platform Mobile Development",
		"Creative Development",
		"Agile Frameworks (Scrum)",
		"Database Management (SQL, ORM)",
		"Version Control",
		"E-Commerce",
		"API Management",
		"AI/ML Integration",
		"Vector Database Management",
		"Natural Language Processing",
	},

	Languages: []Skill{
		{Name: "JavaScript", ImageURL: "/skill-icons/javascript.svg", Description: "I learned JavaScript during my time at General Assembly and have used it extensively across personal and professional projects."},
		{Name: "TypeScript", ImageURL: "/skill-icons/typescript.svg", Description: "TypeScript became essential while working at Splice on the Desktop and Bridge apps. It's now my preferred language for scaling complex projects."},
		{Name: "Dart", ImageURL: "/skill-icons/dart.svg", Description: "I used Dart at Splice to build cross-platform mobile apps like CoSo and Splice Mobile."},
		{Name: "GraphQL", ImageURL: "/skill-icons/graphql.svg", Description: "At Splice, I used GraphQL to efficiently manage and update our sounds API."},
		{Name: "Go", ImageURL: "/skill-icons/go.svg", Description: "I use Go for backend services, including the API that powers this portfolio."},
	},

	Frameworks: []Skill{
		{Name: "React", ImageURL: "/skill-icons/react.svg", Description: "React has been my primary frontend framework since General Assembly."},
		{Name: "Angular", ImageURL: "/skill-icons/angular.svg", Description: "I used Angular at Splice on the Bridge and Desktop applications, delivering complex, scalable UIs."},
		{Name: "Next.js", ImageURL: "/skill-icons/next-js.svg", Description: "I use Next.js frequently for high-performance web applications with server-side rendering."},
		{Name: "Flutter", ImageURL: "/skill-icons/flutter.svg", Description: "I paired Flutter with Dart at Splice, delivering cross-platform mobile apps with native-like performance."},
		{Name: "Node.js", ImageURL: "/skill-icons/node-js.svg", Description: "I've relied on Node.js for backend development throughout my career."},
	},

	DevTools: []Skill{
		{Name: "AWS SES", ImageURL: "/skill-icons/aws-ses.svg", Description: "I've implemented AWS Simple Email Service in this portfolio's contact form."},
		{Name: "PostgreSQL", ImageURL: "/skill-icons/postgresql.svg", Description: "I've used PostgreSQL for relational data, and with pgvector for embedding storage in AI features."},
		{Name: "Redis", ImageURL: "/skill-icons/upstash.svg", Description: "I've implemented Redis for response caching in AI applications, improving response times and reducing API costs."},
		{Name: "Git", ImageURL: "/skill-icons/git.svg", Description: "I use Git for version control across all my projects."},
		{Name: "Figma", ImageURL: "/skill-icons/figma.svg", Description: "I've used Figma for collaborative UI/UX design, prototyping, and wireframing."},
	},

	Work: []Position{
		{
			Company:  "Splice",
			Href:     "https://splice.com/",
			Location: "Remote",
			Title:    "Software Engineer",
			LogoURL:  "/business-logos/splice.png",
			Start:    "2021",
			End:      "2024",
			Description: "At Splice, I initially focused on desktop applications (2021-2022), developing " +
				"key front-end features for Splice Bridge and Splice Desktop using TypeScript, AngularJS, " +
				"Node.js, and Electron.js, including music sample transposition, DAW integrations, and asset " +
				"management. Later (2022-2024), I transitioned to mobile development, working on Splice " +
				"Mobile and CoSo, an AI-assisted music creation platform, using Flutter, Dart, GraphQL, " +
				"Android Studio, and Xcode, and implemented analytics tracking with Segment.",
		},
		{
			Company:  "Public Records",
			Href:     "https://publicrecords.nyc/",
			Location: "Brooklyn, NY",
			Title:    "Founding Team Member",
			LogoURL:  "/business-logos/PRlogo.gif",
			Start:    "2019",
			End:      "2021",
			Description: "Public Records is a music-driven restaurant, performance, and community space. " +
				"As an inaugural staff member, I contributed to the early development of the space, with " +
				"customer-facing services and small operational improvements to enhance the guest experience.",
		},
	},

	Education: []Education{
		{
			School:  "General Assembly",
			Degree:  "Fullstack Software Engineering Bootcamp",
			Href:    "https://generalassemb.ly/",
			LogoURL: "/business-logos/GA.png",
			Start:   "2020",
			End:     "2020",
			Description: "Built a strong foundation in web development through full-stack projects: a sports " +
				"reference database in vanilla JavaScript, an interactive weather app with React, a CRUD " +
				"blogging application with a React frontend and Ruby on Rails backend, and a recipe search " +
				"app built with an Agile team using React and Mongoose.",
		},
	},

	Projects: []Project{
		{
			Title:  "Otion",
			Href:   "https://otion-seven.vercel.app/",
			Dates:  "2024",
			Active: true,
			Description: "A Notion-style document editor with real-time database capabilities, featuring " +
				"infinite nested documents, file management, dark/light modes, authentication, file uploads " +
				"with trash/recovery, and publishing notes to the web.",
			Technologies: []string{"Next.js", "React", "Convex", "Tailwind", "Shadcn UI", "Clerk"},
			Links:        []ProjectLink{{Type: "Website", Href: "https://otion-seven.vercel.app/"}},
			Video:        "https://customer-i0qw4yckciid7sxe.cloudflarestream.com/e17b2af24f617b94feb55e413c16f501/manifest/video.m3u8",
		},
		{
			Title:  "Splice Mobile",
			Href:   "https://splice.com/tools/mobile",
			Dates:  "2022 - 2024",
			Active: true,
			Description: "A music production app for multi-layered compositions using samples, presets, MIDI, " +
				"and creative tools from the Splice catalog. I developed front-end components and purchase " +
				"flows for CoSo, maintained front-end and back-end in Dart and GraphQL, and contributed to " +
				"unifying CoSo and Splice Mobile into a single app.",
			Technologies: []string{"Flutter", "Dart", "Android Studio", "Xcode", "GraphQL", "Segment", "LaunchDarkly", "Braze"},
			Links: []ProjectLink{
				{Type: "About", Href: "https://splice.com/tools/mobile"},
				{Type: "Android", Href: "https://play.google.com/store/apps/details?id=com.splice.mobile"},
				{Type: "iOS", Href: "https://apps.apple.com/us/app/splice-make-more-music/id1108532275"},
			},
			Video: "https://customer-i0qw4yckciid7sxe.cloudflarestream.com/09315f52825b209740156edf4cff7a11/manifest/video.m3u8",
		},
		{
			Title:  "Splice Bridge",
			Href:   "https://splice.com/tools/bridge",
			Dates:  "2021 - 2022",
			Active: true,
			Description: "A plugin that integrates with your DAW to preview Splice samples in real time, " +
				"automatically matching them to the project's tempo and key. I developed the transpose " +
				"component for key and BPM adjustments, coachmark and toast components, and the " +
				"'Copy to DAW' feature.",
			Technologies: []string{"TypeScript", "Angular", "Node.js", "Storybook.js", "Electron.js"},
			Links:        []ProjectLink{{Type: "About", Href: "https://splice.com/blog/how-to-use-splice-bridge/"}},
			Video:        "https://customer-i0qw4yckciid7sxe.cloudflarestream.com/6f485552046d41ad7bd4397d9c8279df/manifest/video.m3u8",
		},
		{
			Title:  "Splice Desktop",
			Href:   "https://splice.com/tools/desktop",
			Dates:  "2021 - 2022",
			Active: true,
			Description: "A central hub for music production with access to millions of royalty-free sounds " +
				"and direct DAW integration. I developed front-end components in Angular and TypeScript, " +
				"managed the component library with Storybook.js, and implemented asset management features.",
			Technologies: []string{"TypeScript", "Angular", "Node.js", "Storybook.js", "Electron.js"},
			Links:        []ProjectLink{{Type: "About", Href: "https://splice.com/tools/desktop"}},
			Video:        "https://customer-i0qw4yckciid7sxe.cloudflarestream.com/1e6d5c239874f261895ca7e2bcc3142e/manifest/video.m3u8",
		},
	},

	Contact: Contact{
		Email: "olukareem@pm.me",
		Social: map[string]string{
			"GitHub":   "https://github.com/olukareem",
			"LinkedIn": "https://www.linkedin.com/in/olukareem",
		},
	},
}
