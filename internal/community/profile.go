package community

import "github.com/community-analyzer/internal/models"

// DefaultProfile is used when the catalog does not describe the community
func DefaultProfile() models.CommunityProfile {
	return models.CommunityProfile{
		Name:             "Web3 Music Community",
		Description:      "A community focused on empowering artists and fans through web3 technology.",
		MissionStatement: "To revolutionize the music industry by connecting artists directly with fans through decentralized technology.",
		Goals: []string{
			"Build tools that empower independent artists",
			"Create new ways for fans to support their favorite artists",
			"Foster collaboration between artists and web3 developers",
			"Educate artists and fans about web3 technology",
		},
		TargetParticipants: []models.TargetParticipant{
			{Role: "artist", SkillsNeeded: []string{"Music Creation", "Social Media", "Community Building"}, ExperienceLevel: "Beginner-friendly"},
			{Role: "fan", SkillsNeeded: []string{"Music Appreciation", "Web3 Basics", "Social Engagement"}, ExperienceLevel: "Beginner-friendly"},
			{Role: "builder", SkillsNeeded: []string{"Solidity", "TypeScript", "Music Industry Knowledge"}, ExperienceLevel: "Intermediate"},
		},
		PointSystem: models.PointSystem{
			Rules: []string{
				"Points are awarded for community engagement and support",
				"Artists earn points for sharing music and engaging with fans",
				"Fans earn points for supporting artists and providing feedback",
				"Builders earn points for developing tools and features",
			},
			MonetaryRewards: true,
		},
		RewardGuidelines: models.RewardGuidelines{
			MinPoints: 10,
			MaxPoints: 500,
			RewardWorthyContributions: []string{
				"Artists sharing original music",
				"Meaningful feedback on artists' work",
				"Supporting other community members",
				"Contributing to web3 music tools",
				"Creating educational content about web3 music",
			},
			ContributionExamples: []string{
				"An artist sharing their latest track with the community",
				"A fan providing detailed feedback on a new release",
				"A builder creating a tool for music NFT distribution",
			},
		},
		ExistingBadges: []string{"helper", "builder", "teacher", "innovator"},
		Roles: map[string]models.RoleDefinition{
			"team":    {Description: "Core team members managing the community", Permissions: []string{"admin", "moderate", "reward", "publish"}},
			"artist":  {Description: "Musicians and creators sharing their work", Permissions: []string{"share_music", "earn_rewards", "create_events"}},
			"fan":     {Description: "Music enthusiasts supporting artists", Permissions: []string{"support_artists", "participate", "earn_rewards"}},
			"builder": {Description: "Developers building web3 music tools", Permissions: []string{"contribute", "review", "earn_rewards"}},
		},
	}
}
