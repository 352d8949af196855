// Package prompts renders the instructions sent to the LLM for every variant.
package prompts

// ChatTemplate asks for a technical summary, FAQ, help interactions and action items.
// Argument: transcript.
const ChatTemplate = `Analyze this Discord chat segment and provide a structured analysis. Focus on technical discussions, decisions, and action items.

Rules:
1. Keep summaries concise and technical
2. Only include genuine questions in FAQ
3. Include interactions where someone answered a question or otherwise helped
4. Action items must be concrete tasks, not general discussion
5. Award points for help interactions:
   - Direct problem solving or debugging: 50-100 points
   - Detailed technical explanations: 30-80 points
   - Quick answers to questions: 10-30 points
   - Promises to help later: 5-10 points
   Give more points for harder problems, more effort, complete solutions and educational value.

Respond ONLY with a JSON object in this format:
{
  "summary": "Technical summary focusing on key decisions and outcomes",
  "faq": [
    {"question": "Specific question asked", "asker": "Username"}
  ],
  "help_interactions": [
    {
      "helper": "Username who helped",
      "recipient": "Username who needed help",
      "task": "What they needed help with",
      "assistance": "The answer or help provided",
      "suggested_points": 50,
      "reason": "Brief explanation of points awarded"
    }
  ],
  "action_items": [
    {
      "description": "Specific actionable task",
      "mentioned_by": "Username",
      "type": "Technical Tasks | Documentation | Feature Request"
    }
  ]
}

Chat transcript:
%s`

// InsightTemplate asks for a high-level view of community discussions.
// Argument: transcript.
const InsightTemplate = `Analyze this Discord chat segment and provide a high-level summary of community discussions.

Focus on:
1. Key technical discussions and decisions
2. Important questions and their answers
3. Notable community interactions
4. Emerging topics or trends

Respond ONLY with a JSON object in this format:
{
  "summary": "High-level overview of key discussions",
  "key_topics": [
    {
      "name": "Topic name",
      "description": "Brief description",
      "participants": ["username1", "username2"],
      "key_points": ["Point 1", "Point 2"]
    }
  ],
  "notable_interactions": [
    {
      "type": "Question|Discussion|Announcement",
      "description": "Brief description",
      "participants": ["username1", "username2"],
      "impact": "Potential impact on community"
    }
  ],
  "emerging_trends": ["Trend description"]
}

Chat transcript:
%s`

// TaskTemplate asks for tasks and contributions.
// Arguments: community rules, existing tasks, reward guidelines, transcript.
const TaskTemplate = `Analyze this Discord chat segment and identify potential tasks and contributions that could help the community.

For each task, specify:
1. Required role: team (internal member with special access), builder (experienced developer),
   ambassador (community leader or moderator) or member (general community member)
2. Required skills (e.g. "TypeScript", "DevOps", "Discord API")
3. Access level: internal, trusted or public
4. Experience level: beginner, intermediate or advanced

Community Context:
%s

Existing Tasks (do not report these again):
%s

Focus on:
1. Concrete tasks or needs mentioned by community members
2. Valuable contributions that deserve rewards
3. Evidence of task requests or community needs
4. Rewards that reflect complexity, effort, value to the community and the community rules

Respond ONLY with a JSON object in this format:
{
  "identified_tasks": [
    {
      "description": "Task description",
      "type": "Feature|Documentation|Support|Infrastructure",
      "evidence": ["Message quotes showing the need"],
      "requirements": {
        "role": "team|builder|ambassador|member",
        "skills": ["required skill"],
        "access_level": "internal|trusted|public",
        "experience_level": "beginner|intermediate|advanced"
      },
      "suggested_reward": {
        "points": 100,
        "badges": ["badge_name"],
        "monetary_value": 50,
        "reasoning": "Why this reward level is appropriate"
      }
    }
  ],
  "contributions": [
    {
      "contributor": "username",
      "description": "What they contributed",
      "impact": "Impact on community",
      "suggested_reward": {
        "points": 50,
        "badges": ["helper"],
        "reasoning": "Why this reward is suggested"
      }
    }
  ]
}

Reward Guidelines:
%s

Chat transcript:
%s`

// RewardTemplate asks for concrete badge or token rewards.
// Arguments: community context, significant contributions, examples, transcript.
const RewardTemplate = `Analyze this Discord chat segment and identify contributions that deserve rewards.

Use the following community context to inform your analysis:
%s

Contribution Levels:
1. Basic Community Engagement (token rewards: 1-5)
   - Welcoming new members
   - Regular participation in discussions
   - Sharing project updates
2. Meaningful Contributions (token rewards: 5-20)
   - Detailed feedback or suggestions
   - Helping other community members
   - Valuable insights in discussions
3. Significant Contributions (token or badge rewards)
%s

Examples:
%s

Only reward a badge when its description matches the reason for the reward; otherwise reward a token.

Respond ONLY with a JSON object in this format, with no additional text:
{
  "identified_rewards": [
    {
      "discordName": "@username",
      "rewardType": "badge|token",
      "rewardName": "name of badge or token",
      "amount": 1,
      "rewardId": "Short description of the reward, under 40 characters",
      "reason": "Why this reward is deserved",
      "metadata": [
        {"key": "contribution_type", "value": "code|documentation|community_support|etc"},
        {"key": "impact_level", "value": "high|medium|low"},
        {"key": "evidence", "value": "The exact message quote showing the contribution"},
        {"key": "channel_name", "value": "Channel where the contribution was made"}
      ]
    }
  ]
}

Chat transcript:
%s`

// ConsolidateTemplate asks for one coherent result from per-segment results.
// Arguments: what to produce, JSON array of segment results.
const ConsolidateTemplate = `Below are analyses of consecutive segments of the same Discord conversation, as a JSON array.
Combine them into ONE analysis of the whole conversation. %s

Rules:
1. Remove duplicates and near-duplicates
2. Keep the most informative version of each entry
3. Do not invent entries that are not supported by the segments
4. Respond ONLY with a single JSON object using exactly the same format as the segments

Segment analyses:
%s`

const (
	chatConsolidationGoal    = "Write a single coherent summary and keep the most relevant questions, help interactions and action items."
	insightConsolidationGoal = "Write a single narrative summary, merge related topics and keep trends that recur or matter."
	taskConsolidationGoal    = "Merge tasks that describe the same need and keep one entry per contribution."
	rewardConsolidationGoal  = "Keep one reward per person and contribution, preferring the best supported entry."
)
