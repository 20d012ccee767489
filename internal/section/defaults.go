// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package section

// Seed documents. These are the documents the site renders before an
// admin has edited anything; EnsureDefault inserts them only when the
// key is absent.

func defaultBanner() map[string]any {
	return map[string]any{"imageUrl": ""}
}

func defaultVice() map[string]any {
	return map[string]any{
		"imageUrl":      "",
		"title":         "Dear Students, Parents, and Community,",
		"p1":            "Welcome to Mongolian International School.",
		"p2":            "As the Vice Principal, I am honored to support our students on their journey.",
		"signatureHtml": "Mr.<br/>Vice Principal",
	}
}

func defaultMissionVision() map[string]any {
	return map[string]any{
		"mission": "To provide a high-quality international education that prepares students for global citizenship.",
		"vision":  "To be a leading international school in Mongolia.",
	}
}

func defaultSuccess() map[string]any {
	return map[string]any{
		"subtitle":  "Celebrating achievements and milestones",
		"graduates": "123",
		"awards":    "Recognized for excellence in education",
		"community": "Active participation in community service projects",
	}
}

func defaultCafeteria() map[string]any {
	return map[string]any{
		"title":    "School Cafeteria",
		"subtitle": "Healthy and nutritious meals for our students",
		"heading":  "Nutrition-Focused Meals",
		"text":     "Our cafeteria provides balanced meals prepared daily by professional chefs using fresh ingredients.",
		"imageUrl": "",
	}
}

func defaultSpecialPrograms() map[string]any {
	return map[string]any{
		"title":    "Special Programs",
		"subtitle": "Unique opportunities for specialized learning",
		"items": []any{
			map[string]any{
				"icon":        "fas fa-graduation-cap",
				"title":       "College Prep",
				"description": "Comprehensive guidance for university applications and career planning.",
			},
			map[string]any{
				"icon":        "fas fa-language",
				"title":       "Language Immersion",
				"description": "Intensive language programs in English, Korean.",
			},
			map[string]any{
				"icon":        "fas fa-laptop-code",
				"title":       "STEM Program",
				"description": "Advanced courses in Science, Technology, Engineering, and Mathematics.",
			},
		},
	}
}

func defaultCalendar() map[string]any {
	return map[string]any{"events": map[string]any{}}
}

func defaultActivities() map[string]any {
	return map[string]any{
		"title":    "Extracurricular Activities",
		"subtitle": "Enriching experiences beyond the classroom",
		"items": []any{
			map[string]any{
				"title":       "Basketball Team",
				"description": "Develop athletic skills and teamwork.",
				"time":        "Wed 3:40-5:00 PM",
				"grades":      "Grades 9-12",
				"imageUrl":    "",
			},
			map[string]any{
				"title":       "Music & Arts",
				"description": "Explore creativity through various art forms and musical instruments.",
				"time":        "Tue 3:40-5:00 PM",
				"grades":      "All Grades",
				"imageUrl":    "",
			},
		},
	}
}

func defaultVolunteer() map[string]any {
	return map[string]any{
		"title":    "Volunteer Programs",
		"subtitle": "Make a difference in your community",
		"items": []any{
			map[string]any{
				"title":       "Tutoring Program",
				"description": "Help elementary school students with reading and math skills.",
				"imageUrl":    "",
			},
			map[string]any{
				"title":       "Environmental Club",
				"description": "Participate in tree planting, recycling campaigns, and community cleanups.",
				"imageUrl":    "",
			},
		},
	}
}

func defaultProcess() map[string]any {
	return map[string]any{
		"title":    "Admissions Process",
		"subtitle": "Steps to join our community",
		"steps": []any{
			map[string]any{
				"title":       "Inquiry & Information",
				"description": "Start by learning about our school programs and curriculum.",
				"bullets": []any{
					"Attend Open House sessions",
					"Review academic programs",
					"Schedule campus tour",
				},
			},
			map[string]any{
				"title":       "Application Submission",
				"description": "Submit the complete application package including all required documents.",
				"bullets": []any{
					"Complete online application form",
					"Submit academic records",
				},
			},
			map[string]any{
				"title":       "Assessment & Interview",
				"description": "Students are invited for assessment and interview for placement.",
				"bullets": []any{
					"Academic assessment",
					"English proficiency test",
				},
			},
			map[string]any{
				"title":       "Admission Decision",
				"description": "Receive admission decision and complete enrollment process.",
				"bullets": []any{
					"Decision within 2 weeks",
					"Attend orientation",
				},
			},
		},
	}
}

func defaultApplication() map[string]any {
	return map[string]any{
		"sectionTitle":       "Online Admissions",
		"sectionSubtitle":    "Apply conveniently through our portal",
		"leftTitle":          "Apply Online",
		"leftText":           "Our online admissions portal makes it easy to apply from anywhere. Track your application status and submit documents electronically.",
		"requirementsTitle":  "Required Documents",
		"requirementsItems": []any{
			"Completed application form",
			"Student's birth certificate",
			"Parent/guardian ID",
			"Teacher recommendations",
		},
		"cardTitle":  "Start Application",
		"cardText":   "Begin your journey with our school today.",
		"buttonText": "Apply Online",
		"buttonUrl":  "",
		"helpText":   "Need help? Contact admissions@mis.edu.mn",
	}
}

func defaultTuition() map[string]any {
	card := func(title, subtitle string) map[string]any {
		return map[string]any{
			"title":    title,
			"subtitle": subtitle,
			"items": []any{
				map[string]any{"label": "Annual Tuition", "amount": "3,600,000T"},
				map[string]any{"label": "Registration Fee", "amount": "20,000T"},
				map[string]any{"label": "Books & Materials", "amount": "10,000T"},
			},
		}
	}
	return map[string]any{
		"sectionTitle":    "Tuition & Fees",
		"sectionSubtitle": "Transparent pricing for quality education",
		"cards": []any{
			card("Primary School", "Grades 1-5"),
			card("Middle School", "Grades 6-8"),
			card("High School", "Grades 9-12"),
		},
	}
}

func defaultNews() map[string]any {
	return map[string]any{
		"sectionTitle":    "School News",
		"sectionSubtitle": "Latest updates from our school",
		"items": []any{
			map[string]any{
				"title":    "Science Fair Winners",
				"date":     "October 15, 2025",
				"excerpt":  "Our students achieved remarkable success at the annual science fair.",
				"moreText": "The winning project was developed by 11th-grade students and received special recognition from the Ministry of Education.",
				"imageUrl": "",
			},
			map[string]any{
				"title":    "New Library Opening",
				"date":     "September 28, 2025",
				"excerpt":  "We are excited to announce the opening of our new library.",
				"moreText": "The new library features quiet study areas, group collaboration spaces, and a digital media center.",
				"imageUrl": "",
			},
		},
	}
}

func defaultFAQ() map[string]any {
	return map[string]any{
		"sectionTitle":    "Frequently Asked Questions",
		"sectionSubtitle": "Find answers to common questions",
		"items": []any{
			map[string]any{
				"question": "What is the application deadline?",
				"answer":   "Applications are accepted year-round, but we recommend applying by April 30th for the following academic year.",
			},
			map[string]any{
				"question": "Is there an entrance exam?",
				"answer":   "Yes, students in grades 3-12 take an entrance assessment including:\n- English language proficiency test\n- Mathematics assessment",
			},
			map[string]any{
				"question": "Are scholarships available?",
				"answer":   "Yes, we offer academic excellence scholarships, need-based financial aid and sports scholarships.",
			},
		},
	}
}

func defaultContact() map[string]any {
	return map[string]any{
		"sectionTitle":    "Contact Information",
		"sectionSubtitle": "Get in touch with us",
		"address": map[string]any{
			"org":   "Mongolian Itgel School",
			"line1": "Bayanzurkh District, 13khoroo",
			"line2": "Ulaanbaatar, Mongolia",
		},
		"phones": map[string]any{
			"mainOffice": "+976 123-4567",
			"admissions": "+976 123-4568",
		},
		"emails": map[string]any{
			"general":    "info@mis.edu.mn",
			"admissions": "admissions@mis.edu.mn",
			"registrar":  "registrar@mis.edu.mn",
		},
		"socials": map[string]any{
			"facebook":  "#",
			"instagram": "#",
			"email":     "mailto:info@mis.edu.mn",
		},
	}
}
