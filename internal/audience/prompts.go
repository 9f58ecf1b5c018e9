package audience

// AnalysisSystemPrompt frames the first round-trip.
const AnalysisSystemPrompt = "You are an expert market research analyst who extracts detailed, actionable audience insights from descriptions."

// AnalysisPrompt is filled with the target audience description.
const AnalysisPrompt = `As a market research expert, analyze the following target audience description and extract detailed insights:

Target Audience: %s

Provide a comprehensive analysis structured as follows:

1. Demographics:
   - Age range (specific ranges, not just 'young' or 'old')
   - Gender distribution (if applicable)
   - Income level
   - Education level
   - Occupation/Professional background
   - Geographic location/Urban vs. rural
   - Family status

2. Psychographics:
   - Values and beliefs
   - Interests and hobbies
   - Lifestyle characteristics
   - Personality traits
   - Aspirations and goals

3. Behavioral Insights:
   - Purchasing behavior
   - Brand preferences/loyalty
   - Media consumption habits
   - Online behavior
   - Decision-making factors

4. Pain Points & Needs:
   - Key challenges or problems
   - Unmet needs
   - Motivations for purchase
   - Objections or hesitations

5. Communication Preferences:
   - Tone that resonates best
   - Message framing that works
   - Content types likely to engage
   - Platforms/channels to reach them

6. Audience Segments:
   - Identify 2-3 distinct sub-segments within this audience
   - For each sub-segment, note key distinguishing characteristics

Format each section with clear bullet points. If any information is not explicitly stated or cannot be reasonably inferred, indicate this with "Not specified" rather than making unfounded assumptions.`

// ParserSystemPrompt frames the structuring call.
const ParserSystemPrompt = "You are a precision parser that converts analytical text into clean JSON format."

// StructurePrompt turns the free-text analysis into a Profile.
const StructurePrompt = `Convert the following audience analysis into a clean, structured JSON format:

%s

The JSON structure should be:
{
    "demographics": {
        "age_range": "",
        "gender_distribution": "",
        "income_level": "",
        "education_level": "",
        "occupation": "",
        "location": "",
        "family_status": ""
    },
    "psychographics": {
        "values_and_beliefs": [],
        "interests_and_hobbies": [],
        "lifestyle": [],
        "personality_traits": [],
        "aspirations_and_goals": []
    },
    "behavioral_insights": {
        "purchasing_behavior": [],
        "brand_preferences": [],
        "media_consumption": [],
        "online_behavior": [],
        "decision_factors": []
    },
    "pain_points_and_needs": {
        "challenges": [],
        "unmet_needs": [],
        "motivations": [],
        "objections": []
    },
    "communication_preferences": {
        "tone": [],
        "message_framing": [],
        "content_types": [],
        "platforms": []
    },
    "audience_segments": [
        {
            "name": "",
            "characteristics": []
        }
    ]
}

For array fields, extract individual points as separate list items.
Use "Not specified" for any fields without clear information.
Format as valid JSON only with no other text.`

// RecommendationSystemPrompt frames the recommendation call.
const RecommendationSystemPrompt = "You are an expert marketing strategist who provides specific, actionable recommendations based on audience insights."

// RecommendationPrompt is filled with the indented profile JSON.
const RecommendationPrompt = `Based on the following structured audience insights, provide specific marketing recommendations:

%s

Generate concise, actionable recommendations in the following categories:

1. Messaging Strategy: How to frame messages to resonate with this audience
2. Channel Strategy: Best platforms and media to reach this audience
3. Content Strategy: Types of content likely to engage this audience
4. Targeting Approach: How to segment and target this audience effectively
5. Creative Direction: Visual and tonal elements that will appeal to this audience

For each category, provide 3-5 specific, practical recommendations as bullet points.
Format your response as a structured JSON object with the keys messaging_strategy, channel_strategy, content_strategy, targeting_approach and creative_direction, each containing an array of recommendation strings.`
