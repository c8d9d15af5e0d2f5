package vfs

// DefaultHome is where the session starts and where a bare "cd" returns.
const DefaultHome = "/home/glitchbane"

// Home builds the portfolio tree and mounts it at home (e.g. /home/glitchbane).
func Home(home string) *Node {
	user := Dir(map[string]*Node{
		"Documents": Dir(map[string]*Node{
			"about.md":      File(Key("about_md")),
			"skills.md":     File(Key("skills_md")),
			"experience.md": File(Key("experience_md")),
			"education.md":  File(Key("education_md")),
		}),
		"Projects": Dir(map[string]*Node{
			"README.md":      File(Key("project-list_md")),
			"quimera.proj":   File(Ref{Kind: RefProject, Value: "quimera"}),
			"anochecer.proj": File(Ref{Kind: RefProject, Value: "anochecer"}),
			"daemons.proj":   File(Ref{Kind: RefProject, Value: "daemons"}),
		}),
		"Pictures": Dir(map[string]*Node{
			"avatar.png": File(Ref{Kind: RefImage, Value: "cat_image"}),
			"logo.svg":   File(Ref{Kind: RefImage, Value: "cat_image"}),
		}),
		"vault": Dir(map[string]*Node{
			"credentials.txt.enc": File(Ref{Kind: RefEncrypted, Value: "credentials_enc"}),
			"protocol.dat.enc":    File(Ref{Kind: RefEncrypted, Value: "protocol_enc"}),
		}),
		"README.md":  File(Key("README_md")),
		"contact.md": File(Key("contact_md")),
		"social.md":  File(Key("social_md")),
		"resume.md":  File(Key("resume_md")),
	})

	// Wrap the user directory in one directory per segment of home,
	// innermost first.
	parts := Split(home)
	node := user
	for i := len(parts) - 1; i >= 0; i-- {
		node = Dir(map[string]*Node{parts[i]: node})
	}
	return node
}
