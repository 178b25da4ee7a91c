// Package content holds the static data rendered into the portfolio page.
package content

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"

	"github.com/viditpawar/portfolio/internal/scrollspy"
)

// Section ids in document order.
const (
	Hero           scrollspy.SectionID = "hero"
	About          scrollspy.SectionID = "about"
	Skills         scrollspy.SectionID = "skills"
	Experience     scrollspy.SectionID = "experience"
	Projects       scrollspy.SectionID = "projects"
	Certifications scrollspy.SectionID = "certifications"
	Contact        scrollspy.SectionID = "contact"
)

var sectionOrder = []scrollspy.SectionID{Hero, About, Skills, Experience, Projects, Certifications, Contact}

// SectionIDs returns the page sections in document order.
func SectionIDs() []scrollspy.SectionID {
	return append([]scrollspy.SectionID(nil), sectionOrder...)
}

// IsSection reports whether id names a page section.
func IsSection(id string) bool {
	for _, s := range sectionOrder {
		if string(s) == id {
			return true
		}
	}
	return false
}

type NavItem struct {
	Label  string
	Target scrollspy.SectionID
}

// Nav lists the labels shown in the navigation bar. Hero and certifications
// are reachable by scrolling but have no label of their own.
var Nav = []NavItem{
	{Label: "About", Target: About},
	{Label: "Skills", Target: Skills},
	{Label: "Experience", Target: Experience},
	{Label: "Projects", Target: Projects},
	{Label: "Contact", Target: Contact},
}

type Link struct {
	Name string
	URL  string
}

type Profile struct {
	Name      string
	Headline  string
	Tagline   string
	PhotoPath string
	Resume    string
	GitHub    Link
	LinkedIn  Link
}

type SkillGroup struct {
	Category string
	Skills   []string
}

type Job struct {
	Title        string
	Organization string
	StartDate    string
	EndDate      string
	Bullets      []string
}

type Project struct {
	Title       string
	Description string
	Tech        []string
	StartDate   string
	EndDate     string
}

type ContactDetails struct {
	Email     string
	Phone     string
	PhoneHref template.URL
	Pitch     string
}

// Page is everything the portfolio template renders.
type Page struct {
	Profile        Profile
	About          template.HTML
	Skills         []SkillGroup
	Experience     []Job
	Projects       []Project
	Certifications []string
	Contact        ContactDetails
	Year           int
}

var profile = Profile{
	Name:     "Vidit Pawar",
	Headline: "Cloud & DevOps Engineer",
	Tagline: "Automating secure, scalable multi-cloud infrastructure across AWS, Azure, and GCP using Terraform, " +
		"CI/CD, and Kubernetes.",
	PhotoPath: "/images/Vidit.jpg",
	Resume:    "/assets/Resume_Vidit.pdf",
	GitHub:    Link{Name: "GitHub", URL: "https://github.com/viditpawar"},
	LinkedIn:  Link{Name: "LinkedIn", URL: "https://www.linkedin.com/in/viditpawar/"},
}

const aboutMarkdown = `Cloud & DevOps Engineer with hands-on experience designing and automating multi-cloud (AWS, Azure, GCP)
infrastructure. Skilled in Infrastructure as Code (Terraform, Ansible), CI/CD (Azure DevOps, Jenkins,
GitHub Actions), and container orchestration (Kubernetes, Docker).

Proven success improving deployment efficiency, security, and scalability through automation and
observability practices. Currently pursuing a Master's in Management Information Systems at the University
of Arizona.
`

var skills = []SkillGroup{
	{Category: "Cloud Platforms", Skills: []string{"AWS", "Azure", "GCP", "EC2", "S3", "Lambda", "RDS", "ECS", "EKS", "AKS"}},
	{Category: "Infrastructure as Code", Skills: []string{"Terraform", "Ansible", "CloudFormation", "Chef", "Puppet", "ARM Templates"}},
	{Category: "CI/CD & Automation", Skills: []string{"Azure DevOps", "Jenkins", "GitHub Actions", "Docker", "Kubernetes", "Helm", "ArgoCD"}},
	{Category: "Monitoring & Security", Skills: []string{"Grafana", "Prometheus", "CloudTrail", "Azure Security Center", "Vault", "SonarQube", "Veracode"}},
	{Category: "Programming Languages", Skills: []string{"Python", "C Programming", "SQL", "PowerShell", "Bash"}},
	{Category: "Databases & BI", Skills: []string{"MySQL", "PostgreSQL", "Oracle SQL", "BigQuery", "Power BI", "Tableau"}},
}

var experience = []Job{
	{
		Title:        "DevOps Intern",
		Organization: "Blue Cross Blue Shield of Arizona",
		StartDate:    "May 2025",
		EndDate:      "Aug 2025",
		Bullets: []string{
			"Automated AWS infrastructure provisioning using Terraform and CloudFormation, standardizing multi-environment deployments",
			"Integrated Veracode security scans into 300+ CI/CD pipelines to proactively identify and mitigate vulnerabilities",
			"Built 10+ automated smoke tests with REST API validation in ADO, increasing deployment reliability",
			"Collaborated with DevSecOps teams to integrate Azure Key Vault and enforce role-based access",
		},
	},
	{
		Title:        "Cloud Engineer",
		Organization: "LTIMindtree",
		StartDate:    "Jul 2022",
		EndDate:      "May 2024",
		Bullets: []string{
			"Streamlined infrastructure deployment within CI/CD pipelines using Terraform and Ansible, resulting in a 70% reduction in manual effort",
			"Deployed AWS Lambda and Python automation scripts to streamline cloud operations",
			"Optimized containerized workloads on Kubernetes (AKS, EKS), ensuring high availability and scalability",
			"Configured Grafana and Prometheus dashboards to monitor cloud workloads, enabling real-time observability",
		},
	},
	{
		Title:        "Data Analyst Intern",
		Organization: "MEDTOUREASY",
		StartDate:    "Jun 2021",
		EndDate:      "Jul 2021",
		Bullets: []string{
			"Engineered scalable data warehouse on GCP with partitioning and automation, improving query performance by 30%",
			"Built automated data pipelines integrating multiple sources into BigQuery",
			"Developed monitoring dashboards using Google Data Studio for real-time visibility",
		},
	},
}

var projects = []Project{
	{
		Title: "Dynamic Fare Estimation for NYC Taxis",
		Description: "Developed a cloud-hosted fare prediction system using NYC TLC data, deploying regression models for " +
			"real-time taxi fare estimation with Streamlit UI, PostgreSQL, and Redis caching.",
		Tech:      []string{"Cloud Computing", "Docker", "PostgreSQL", "Redis", "GitHub Actions"},
		StartDate: "Aug 2025",
		EndDate:   "Dec 2025",
	},
	{
		Title: "YouTube Trends Analysis",
		Description: "Collected 320,000+ YouTube Trending Video records from multiple countries into AWS S3. Architected AWS " +
			"Glue ETL pipeline and integrated AWS Athena with Power BI to build dashboards.",
		Tech:      []string{"AWS Glue", "AWS Athena", "S3", "Power BI", "Data Mining"},
		StartDate: "Jan 2025",
		EndDate:   "Apr 2025",
	},
	{
		Title: "Care Companion",
		Description: "Led agile ceremonies and collaborated with cross-functional teams using Microsoft Project, Figma, and " +
			"Jira. Developed comprehensive user stories with Figma for process visualization.",
		Tech:      []string{"Agile", "Figma", "Jira", "Microsoft Project", "System Analysis"},
		StartDate: "Aug 2024",
		EndDate:   "Dec 2024",
	},
}

var certifications = []string{
	"Microsoft Certified: Azure Administrator Associate",
	"Microsoft Certified: Azure Fundamentals",
	"Microsoft 365 Certified: Fundamentals",
	"Microsoft Certified: Power BI Data Analyst Associate",
	"Microsoft Certified: Azure Data Fundamentals",
	"HackerRank SQL (Intermediate)",
}

var contact = ContactDetails{
	Email:     "vidit.pawar25@gmail.com",
	Phone:     "+1 520-535-3666",
	PhoneHref: "tel:+15205353666",
	Pitch: "I'm always open to discussing new opportunities, collaborations, or cloud infrastructure challenges. " +
		"Feel free to reach out!",
}

// Load renders the about text and assembles the page data.
func Load(year int) (*Page, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(aboutMarkdown), &buf); err != nil {
		return nil, fmt.Errorf("render about: %w", err)
	}
	return &Page{
		Profile:        profile,
		About:          template.HTML(buf.String()),
		Skills:         skills,
		Experience:     experience,
		Projects:       projects,
		Certifications: certifications,
		Contact:        contact,
		Year:           year,
	}, nil
}

// OwnerEmail is where contact form messages go by default.
func OwnerEmail() string {
	return contact.Email
}
